package application

import "github.com/Apurer/pet-adoption-api/internal/shared/validation"

// UploadRules validates the multipart upload form. The file part is checked for presence only.
var UploadRules = validation.Schema{
	{Name: "file", Kind: validation.KindPresent, Required: true},
	{Name: "description", Kind: validation.KindString, Required: true, Max: 255},
}
