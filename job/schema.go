package job

// Document field names shared by serialization and rehydration.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldType        = "type"
	FieldService     = "service"
	FieldStatus      = "status"
	FieldResult      = "result"
	FieldStart       = "start"
	FieldEnd         = "end"
	FieldDuration    = "duration"
	FieldAdded       = "added_to_job_manager"
)

// Terminator ends the byte form of a job document.
const Terminator byte = 0
