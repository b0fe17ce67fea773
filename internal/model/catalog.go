package model

import "fmt"

// Gender options for patient records.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

var (
	Genders    = []string{GenderMale, GenderFemale, GenderOther}
	BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
)

// StaffStatusActive is the roster default for new staff rows.
const StaffStatusActive = "Active"

// Patients is the patient registry schema. Phone is the natural key the
// front desk searches by, so it is unique and required.
var Patients = &Schema{
	Name:     "patients",
	Singular: "patient",
	Table:    "patients",
	Fields: []Field{
		{Name: "first_name", Label: "First Name", Kind: FieldText, Required: true, Searchable: true},
		{Name: "last_name", Label: "Last Name", Kind: FieldText, Required: true, Searchable: true},
		{Name: "phone", Label: "Phone", Kind: FieldText, Required: true, Unique: true, Searchable: true},
		{Name: "gender", Label: "Gender", Kind: FieldEnum, Options: Genders},
		{Name: "dob", Label: "Date of Birth", Kind: FieldDate},
		{Name: "blood_type", Label: "Blood Type", Kind: FieldEnum, Options: BloodTypes},
	},
	LabelTemplate: "{first_name} {last_name} ({phone})",
	OrderBy:       []string{ColumnCreatedAt, ColumnID},
}

// Doctors is the doctor directory schema, listed by name.
var Doctors = &Schema{
	Name:     "doctors",
	Singular: "doctor",
	Table:    "doctors",
	Fields: []Field{
		{Name: "name", Label: "Name", Kind: FieldText, Required: true, Searchable: true},
		{Name: "specialty", Label: "Specialty", Kind: FieldText, Required: true, Searchable: true},
		{Name: "phone", Label: "Phone", Kind: FieldText, Searchable: true},
		{Name: "department", Label: "Department", Kind: FieldText},
	},
	LabelTemplate: "{name} ({specialty})",
	OrderBy:       []string{"name", ColumnID},
}

// Staff is the staff roster schema, listed by name.
var Staff = &Schema{
	Name:     "staff",
	Singular: "staff member",
	Table:    "staff",
	Fields: []Field{
		{Name: "name", Label: "Name", Kind: FieldText, Required: true, Searchable: true},
		{Name: "role", Label: "Role", Kind: FieldText, Required: true, Searchable: true},
		{Name: "phone", Label: "Phone", Kind: FieldText, Searchable: true},
		{Name: "department", Label: "Department", Kind: FieldText},
		{Name: "status", Label: "Status", Kind: FieldText, Default: StaffStatusActive},
	},
	LabelTemplate: "{name} ({role})",
	OrderBy:       []string{"name", ColumnID},
}

// Catalog lists every resource schema served by the admin API.
func Catalog() []*Schema {
	return []*Schema{Patients, Doctors, Staff}
}

// SchemaByName finds a catalog schema by its resource name.
func SchemaByName(name string) (*Schema, bool) {
	for _, s := range Catalog() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// ValidateCatalog checks every schema at startup.
func ValidateCatalog() error {
	seen := map[string]bool{}
	for _, s := range Catalog() {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate schema name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
