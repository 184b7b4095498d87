// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the form controller, handlers, and storage can all import types
// without depending on each other.
package types

import (
	"strconv"
	"time"
)

// Registration is one student registration as entered on the form.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — the field name used by clients and by the form
//     controller's UpdateField(name, value).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "notblank" rejects empty AND whitespace-only strings;
//     plain "required" would let "   " through.
//
// Email and phone fields carry no format rules on purpose: the form only
// checks that required values are present.
type Registration struct {
	// Student information
	FirstName   string `json:"firstName"   validate:"notblank"`
	LastName    string `json:"lastName"    validate:"notblank"`
	DateOfBirth string `json:"dateOfBirth" validate:"notblank"`
	Gender      string `json:"gender"      validate:"notblank"`

	// Contact
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address" validate:"notblank"`
	City    string `json:"city"    validate:"notblank"`
	ZipCode string `json:"zipCode" validate:"notblank"`

	// Academic
	PreviousSchool   string `json:"previousSchool"`
	GradeApplyingFor string `json:"gradeApplyingFor" validate:"notblank"`

	// Guardian
	GuardianName     string `json:"guardianName"     validate:"notblank"`
	GuardianRelation string `json:"guardianRelation" validate:"notblank"`
	GuardianPhone    string `json:"guardianPhone"    validate:"notblank"`
	GuardianEmail    string `json:"guardianEmail"    validate:"notblank"`

	// Emergency contact and medical notes
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
	MedicalConditions     string `json:"medicalConditions"`
}

// StoredRegistration is a Registration after it has been persisted.
type StoredRegistration struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Registration
}

// Field describes one input on the registration form.
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	// Message is shown next to the field when a required value is missing.
	Message string `json:"message,omitempty"`
}

// Fields lists every form input in display order.
var Fields = []Field{
	{Name: "firstName", Label: "First Name", Required: true, Message: "First name is required"},
	{Name: "lastName", Label: "Last Name", Required: true, Message: "Last name is required"},
	{Name: "dateOfBirth", Label: "Date of Birth", Required: true, Message: "Date of birth is required"},
	{Name: "gender", Label: "Gender", Required: true, Message: "Gender is required"},
	{Name: "email", Label: "Email Address"},
	{Name: "phone", Label: "Phone Number"},
	{Name: "address", Label: "Street Address", Required: true, Message: "Address is required"},
	{Name: "city", Label: "City", Required: true, Message: "City is required"},
	{Name: "zipCode", Label: "Zip / Postal Code", Required: true, Message: "Zip code is required"},
	{Name: "previousSchool", Label: "Previous School Attended"},
	{Name: "gradeApplyingFor", Label: "Grade Applying For", Required: true, Message: "Grade is required"},
	{Name: "guardianName", Label: "Guardian Name", Required: true, Message: "Guardian name is required"},
	{Name: "guardianRelation", Label: "Relationship to Student", Required: true, Message: "Relationship is required"},
	{Name: "guardianPhone", Label: "Guardian Phone", Required: true, Message: "Guardian phone is required"},
	{Name: "guardianEmail", Label: "Guardian Email", Required: true, Message: "Guardian email is required"},
	{Name: "emergencyContactName", Label: "Emergency Contact Name"},
	{Name: "emergencyContactPhone", Label: "Emergency Contact Phone"},
	{Name: "medicalConditions", Label: "Medical Conditions / Allergies"},
}

// LookupField returns the Field with the given JSON name.
func LookupField(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields returns the names of every required field in display order.
func RequiredFields() []string {
	names := make([]string, 0, len(Fields))
	for _, f := range Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// FieldRef returns a pointer to the struct field behind a JSON field name,
// so callers can read or write one field at a time.
func (r *Registration) FieldRef(name string) (*string, bool) {
	switch name {
	case "firstName":
		return &r.FirstName, true
	case "lastName":
		return &r.LastName, true
	case "dateOfBirth":
		return &r.DateOfBirth, true
	case "gender":
		return &r.Gender, true
	case "email":
		return &r.Email, true
	case "phone":
		return &r.Phone, true
	case "address":
		return &r.Address, true
	case "city":
		return &r.City, true
	case "zipCode":
		return &r.ZipCode, true
	case "previousSchool":
		return &r.PreviousSchool, true
	case "gradeApplyingFor":
		return &r.GradeApplyingFor, true
	case "guardianName":
		return &r.GuardianName, true
	case "guardianRelation":
		return &r.GuardianRelation, true
	case "guardianPhone":
		return &r.GuardianPhone, true
	case "guardianEmail":
		return &r.GuardianEmail, true
	case "emergencyContactName":
		return &r.EmergencyContactName, true
	case "emergencyContactPhone":
		return &r.EmergencyContactPhone, true
	case "medicalConditions":
		return &r.MedicalConditions, true
	}
	return nil, false
}

// Options holds the choice lists a client offers for select inputs.
// They are suggestions only; any non-blank value is accepted.
type Options struct {
	Genders           []Option `json:"genders"`
	Grades            []Option `json:"grades"`
	GuardianRelations []Option `json:"guardianRelations"`
	RequiredFields    []string `json:"requiredFields"`
}

// Option is one entry of a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormOptions returns the select choices used by the registration form.
func FormOptions() Options {
	grades := make([]Option, 0, 13)
	for i := 1; i <= 12; i++ {
		g := "Grade " + strconv.Itoa(i)
		grades = append(grades, Option{Value: g, Label: g})
	}
	grades = append(grades, Option{Value: "Kindergarten", Label: "Kindergarten"})

	return Options{
		Genders: []Option{
			{Value: "male", Label: "Male"},
			{Value: "female", Label: "Female"},
			{Value: "other", Label: "Other"},
			{Value: "prefer_not_to_say", Label: "Prefer not to say"},
		},
		Grades: grades,
		GuardianRelations: []Option{
			{Value: "Father", Label: "Father"},
			{Value: "Mother", Label: "Mother"},
			{Value: "Grandparent", Label: "Grandparent"},
			{Value: "Legal Guardian", Label: "Legal Guardian"},
			{Value: "Other", Label: "Other"},
		},
		RequiredFields: RequiredFields(),
	}
}
