package models

// Record is a generic contact record keyed by email.
type Record struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int32  `json:"age"`
}

// RecordPatch lists the fields of a partial record update.
type RecordPatch struct {
	Name *string
	Age  *int32
}
