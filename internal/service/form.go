package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"querydemo/internal/errs"
	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/schema"
)

var validate = validator.New()

// userFormInput is the wire shape of a user form. Name is a pointer so a
// present empty name passes and only an absent one is rejected.
type userFormInput struct {
	Name      *string `json:"name" validate:"required"`
	HairColor *string `json:"hair_color"`
}

// DecodeUserForms parses a JSON object or an array of objects into user
// forms and validates each one. Keys match exactly and may appear once;
// unknown keys are ignored. Malformed input or a missing required field
// yields an *errs.DeserializeError.
func DecodeUserForms(data []byte) ([]model.UserForm, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errs.NewDeserializeError("", errors.New("empty input"))
	}

	var objects []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &objects); err != nil {
			return nil, errs.NewDeserializeError(jsonField(err), err)
		}
	} else {
		var raw json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errs.NewDeserializeError(jsonField(err), err)
		}
		objects = append(objects, raw)
	}

	forms := make([]model.UserForm, 0, len(objects))
	for _, raw := range objects {
		f, err := decodeUserForm(raw)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, nil
}

func decodeUserForm(raw json.RawMessage) (model.UserForm, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return model.UserForm{}, errs.NewDeserializeError("", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return model.UserForm{}, errs.NewDeserializeError("", fmt.Errorf("expected an object, got %v", tok))
	}

	var in userFormInput
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return model.UserForm{}, errs.NewDeserializeError("", err)
		}
		key, _ := tok.(string)
		if seen[key] {
			return model.UserForm{}, errs.NewDeserializeError(key, errors.New("duplicate field"))
		}
		seen[key] = true

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return model.UserForm{}, errs.NewDeserializeError(key, err)
		}
		var dst any
		switch key {
		case "name":
			dst = &in.Name
		case "hair_color":
			dst = &in.HairColor
		default:
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return model.UserForm{}, errs.NewDeserializeError(key, err)
		}
	}

	if err := validateForm(in); err != nil {
		return model.UserForm{}, err
	}
	return model.UserForm{Name: *in.Name, HairColor: in.HairColor}, nil
}

func validateForm(in userFormInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return errs.NewDeserializeError(strings.ToLower(ve[0].Field()), errors.New("is "+ve[0].Tag()))
	}
	return errs.NewDeserializeError("", err)
}

func jsonField(err error) string {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return te.Field
	}
	return ""
}

// FormRow maps a form onto an insert row. A nil hair color renders as
// DEFAULT.
func FormRow(f model.UserForm) query.Row {
	return query.R(
		schema.UserName.Eq(f.Name),
		query.Opt(schema.UserHairColor, f.HairColor),
	)
}

// FormRows maps every form onto an insert row.
func FormRows(forms []model.UserForm) []query.Row {
	rows := make([]query.Row, 0, len(forms))
	for _, f := range forms {
		rows = append(rows, FormRow(f))
	}
	return rows
}
