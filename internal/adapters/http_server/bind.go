package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

const maxBodyBytes = 1 << 20

var (
	bindOnce   sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

// initBind builds the validator singleton with english translations and
// json tag names, so failure messages talk about "hotelId", not "HotelID".
func initBind() {
	bindOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		translator, _ = uni.GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = entrans.RegisterDefaultTranslations(validate, translator)
	})
}

// decodeJSON decodes a strict JSON body into dst: unknown fields rejected,
// 1MB cap, no trailing data, then struct tags validated.
func decodeJSON(r *http.Request, dst any) error {
	initBind()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %v", err)
	}
	if dec.More() {
		return fmt.Errorf("unexpected trailing data after JSON body")
	}

	if err := validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("%s", verrs[0].Translate(translator))
		}
		return err
	}
	return nil
}
