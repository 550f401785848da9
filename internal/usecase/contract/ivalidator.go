package usecasecontract

// IValidator validates request payloads before they reach the network.
type IValidator interface {
	// ValidateStruct runs the `validate` tags of s.
	ValidateStruct(s interface{}) error
}
