package model

import (
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DataType is the storage type of a custom field on the wire.
type DataType string

// Data types accepted by the service.
const (
	DataTypeBoolean      DataType = "boolean"
	DataTypeDate         DataType = "date"
	DataTypeDocumentLink DataType = "documentlink"
	DataTypeFloat        DataType = "float"
	DataTypeInteger      DataType = "integer"
	DataTypeLongText     DataType = "longtext"
	DataTypeMonetary     DataType = "monetary"
	DataTypeSelect       DataType = "select"
	DataTypeString       DataType = "string"
	DataTypeURL          DataType = "url"
)

// dataTypeLabels maps the labels users type to wire data types.
var dataTypeLabels = map[string]DataType{
	"boolean":       DataTypeBoolean,
	"date":          DataTypeDate,
	"document link": DataTypeDocumentLink,
	"integer":       DataTypeInteger,
	"long text":     DataTypeLongText,
	"monetary":      DataTypeMonetary,
	"number":        DataTypeFloat,
	"select":        DataTypeSelect,
	"text":          DataTypeString,
	"url":           DataTypeURL,
}

// DataTypeLabels returns the accepted labels in sorted order.
func DataTypeLabels() []string {
	labels := make([]string, 0, len(dataTypeLabels))
	for label := range dataTypeLabels {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// ParseDataType maps a user label such as "long text" to its wire value.
func ParseDataType(label string) (DataType, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if dt, ok := dataTypeLabels[normalized]; ok {
		return dt, nil
	}
	return "", fmt.Errorf("unsupported data type %q (expected one of: %s)", normalized, strings.Join(DataTypeLabels(), ", "))
}

// CustomField is a user defined document field.
type CustomField struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	DataType      DataType       `json:"data_type"`
	ExtraData     map[string]any `json:"extra_data,omitempty"`
	DocumentCount *int           `json:"document_count,omitempty"`
}

// SelectOption is one choice of a select field.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
}

// CustomFieldExtra carries type specific settings.
type CustomFieldExtra struct {
	SelectOptions []SelectOption `json:"select_options"`
}

// CustomFieldCreate is the POST body for a custom field.
type CustomFieldCreate struct {
	Name      string            `json:"name"`
	DataType  DataType          `json:"data_type"`
	ExtraData *CustomFieldExtra `json:"extra_data,omitempty"`
}

// CustomFieldUpdate is the PATCH body for a custom field.
type CustomFieldUpdate struct {
	Name      *string           `json:"name,omitempty"`
	DataType  *DataType         `json:"data_type,omitempty"`
	ExtraData *CustomFieldExtra `json:"extra_data,omitempty"`
}

// NewCustomFieldCreate builds a create payload from user input. Select
// fields need at least one option; other types take none.
func NewCustomFieldCreate(name, dataTypeLabel string, options []string) (CustomFieldCreate, error) {
	dt, err := ParseDataType(dataTypeLabel)
	if err != nil {
		return CustomFieldCreate{}, err
	}
	extra, err := selectExtra(dt, options)
	if err != nil {
		return CustomFieldCreate{}, err
	}
	c := CustomFieldCreate{Name: strings.TrimSpace(name), DataType: dt, ExtraData: extra}
	if err := validation.ValidateStruct(&c, validation.Field(&c.Name, validation.Required)); err != nil {
		return CustomFieldCreate{}, err
	}
	return c, nil
}

// NewCustomFieldUpdate builds a patch payload. An empty dataTypeLabel leaves
// the type unchanged, in which case options are rejected.
func NewCustomFieldUpdate(name *string, dataTypeLabel string, options []string) (CustomFieldUpdate, error) {
	u := CustomFieldUpdate{Name: name}
	if strings.TrimSpace(dataTypeLabel) == "" {
		if len(options) > 0 {
			return CustomFieldUpdate{}, fmt.Errorf("--option requires --data-type select")
		}
		return u, nil
	}
	dt, err := ParseDataType(dataTypeLabel)
	if err != nil {
		return CustomFieldUpdate{}, err
	}
	extra, err := selectExtra(dt, options)
	if err != nil {
		return CustomFieldUpdate{}, err
	}
	u.DataType = &dt
	u.ExtraData = extra
	return u, nil
}

func selectExtra(dt DataType, options []string) (*CustomFieldExtra, error) {
	labels := make([]string, 0, len(options))
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			labels = append(labels, o)
		}
	}

	if dt != DataTypeSelect {
		if len(labels) > 0 {
			return nil, fmt.Errorf("--option is only valid with --data-type select")
		}
		return nil, nil
	}

	err := validation.Validate(labels, validation.Required.Error("select fields need at least one --option"))
	if err != nil {
		return nil, err
	}
	extra := &CustomFieldExtra{SelectOptions: make([]SelectOption, 0, len(labels))}
	for _, l := range labels {
		extra.SelectOptions = append(extra.SelectOptions, SelectOption{Label: l})
	}
	return extra, nil
}

// CustomFieldPlain renders "[id] name (N documents)".
func CustomFieldPlain(f CustomField) string {
	return bracketed(f.ID, f.Name, f.DocumentCount)
}
