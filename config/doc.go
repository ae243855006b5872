// Package config loads the YAML configuration through viper.
//
// Lookup order when no path is given: /etc/longrun, $HOME/.longrun, the
// working directory and the executable's directory. Environment variables
// prefixed LONGRUN_ override file values. Watch reloads on file change.
package config
