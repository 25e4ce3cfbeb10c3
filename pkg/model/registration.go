package model

import "net/http"

// Field names shared by the model, the validation schema and the wire payload.
const (
	FieldUsername    = "username"
	FieldFavLanguage = "favLanguage"
	FieldFavFood     = "favFood"
	FieldAgreement   = "agreement"
)

const (
	// DefaultEndpoint is the remote registration API.
	DefaultEndpoint = "https://webapis.bloomtechdev.com/registration"
	// RegistrationOperationID names the submit operation in the endpoint contract.
	RegistrationOperationID = "createRegistration"
)

// Registration returns the registration form model.
func Registration() FormModel {
	return FormModel{
		OperationID: RegistrationOperationID,
		Endpoint:    DefaultEndpoint,
		Method:      http.MethodPost,
		Title:       "Create an Account",
		SubmitLabel: "Submit",
		Fields: []Field{
			{
				Name:        FieldUsername,
				Type:        FieldTypeString,
				Control:     ControlText,
				Required:    true,
				Label:       "Username:",
				Placeholder: "Type Username",
				Default:     "",
			},
			{
				Name:     FieldFavLanguage,
				Type:     FieldTypeString,
				Control:  ControlRadio,
				Required: true,
				Label:    "Favorite Language:",
				Default:  "",
				Options: []Option{
					{Label: "JavaScript", Value: "javascript"},
					{Label: "Rust", Value: "rust"},
				},
			},
			{
				Name:     FieldFavFood,
				Type:     FieldTypeString,
				Control:  ControlSelect,
				Required: true,
				Label:    "Favorite Food:",
				Default:  "",
				Options: []Option{
					{Label: "-- Select Favorite Food --", Value: ""},
					{Label: "Pizza", Value: "pizza"},
					{Label: "Spaghetti", Value: "spaghetti"},
					{Label: "Broccoli", Value: "broccoli"},
				},
			},
			{
				Name:     FieldAgreement,
				Type:     FieldTypeBoolean,
				Control:  ControlCheckbox,
				Required: true,
				Label:    "Agree to our terms",
				Default:  false,
			},
		},
	}
}
