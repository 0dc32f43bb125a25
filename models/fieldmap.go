package models

// Edit payloads arrive keyed by the field names the forms display, which do
// not always match the stored column names. Each editable entity declares
// its mapping here, statically; an incoming key that is not a mapped visible
// name is rejected, never passed through. Linkage and identity columns are
// deliberately absent from the maps: an edit form never reassigns a row to
// another patient or specialist. fieldmap_test.go checks every target
// against the entity's bson tags so a schema rename breaks the build's
// tests instead of silently dropping writes.

// ExamFieldMap maps visible exam form fields to stored columns.
var ExamFieldMap = map[string]string{
	"archivos": "pdf_path",
	"fecha":    "fecha",
	"notas":    "notas",
}

// ReferralFieldMap maps visible referral form fields to stored columns.
var ReferralFieldMap = map[string]string{
	"fecha":        "fecha",
	"motivo":       "motivo",
	"especialidad": "especialidad",
	"estado":       "estado",
}

// PatientFieldMap maps visible patient form fields to stored columns.
var PatientFieldMap = map[string]string{
	"nombre":          "nombre",
	"documento":       "documento",
	"telefono":        "telefono",
	"direccion":       "direccion",
	"fechaNacimiento": "fecha_nacimiento",
	"observaciones":   "observaciones",
}

// NonEditableColumns are never writable through an edit payload, whatever
// the form shows.
var NonEditableColumns = map[string]bool{
	"id":              true,
	"usuario_id":      true,
	"paciente_id":     true,
	"especialista_id": true,
	"created_at":      true,
}

// ResolveEditableColumn translates one visible field name to its stored
// column using the given entity map. ok is false when the field is unknown
// or resolves to a non-editable column.
func ResolveEditableColumn(fieldMap map[string]string, visible string) (string, bool) {
	column, mapped := fieldMap[visible]
	if !mapped {
		return "", false
	}
	if NonEditableColumns[column] {
		return "", false
	}
	return column, true
}
