package services

import (
	"embed"
	"fmt"
	"strings"

	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	cvSchema       = mustLoadSchema("schema/cv.schema.json")
	cvCreateSchema = mustLoadSchema("schema/cv_create.schema.json")
)

func mustLoadSchema(name string) *gojsonschema.Schema {
	b, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read %s: %v", name, err))
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("compile %s: %v", name, err))
	}
	return s
}

// ValidateCVDocument checks a raw CV payload. Creation additionally requires
// the template, personal info and summary to be present.
func ValidateCVDocument(raw []byte, creating bool) error {
	doc := gojsonschema.NewBytesLoader(raw)

	fields := map[string]string{}
	schemas := []*gojsonschema.Schema{cvSchema}
	if creating {
		schemas = append(schemas, cvCreateSchema)
	}
	for _, s := range schemas {
		res, err := s.Validate(doc)
		if err != nil {
			return apperr.Validation("Request body must be a JSON object.", nil)
		}
		for _, e := range res.Errors() {
			fields[schemaErrorField(e)] = e.Description()
		}
	}
	if len(fields) > 0 {
		return apperr.Validation("CV validation failed.", fields)
	}
	return nil
}

func schemaErrorField(e gojsonschema.ResultError) string {
	field := e.Field()
	if e.Type() == "required" {
		if p, ok := e.Details()["property"].(string); ok && !strings.HasSuffix(field, p) {
			if field == "(root)" {
				return p
			}
			return field + "." + p
		}
	}
	return field
}
