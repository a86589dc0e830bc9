package handlers

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// publishedYear upper bound is the current year, so it cannot live
	// in a static tag.
	v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(time.Now().Year())
	})
	return v
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type BookInput struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	PublishedYear int    `json:"publishedYear" validate:"required,min=1000,notfuture"`
	Genre         string `json:"genre" validate:"required"`
	Description   string `json:"description" validate:"required,min=10"`
	CoverImage    string `json:"coverImage" validate:"omitempty,url"`
}

type ReviewInput struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"required"`
}

// fieldMessages mirrors the messages the book form renders inline.
var fieldMessages = map[string]string{
	"name.min":                "Name must be at least 2 characters.",
	"email.email":             "Please enter a valid email.",
	"password.min":            "Password must be at least 6 characters.",
	"title.required":          "Title is required",
	"author.required":         "Author is required",
	"publishedYear.min":       "Invalid year",
	"publishedYear.notfuture": "Year cannot be in the future",
	"genre.required":          "Genre is required",
	"description.min":         "Description must be at least 10 characters",
	"description.required":    "Description must be at least 10 characters",
	"coverImage.url":          "Please enter a valid URL.",
	"rating.required":         "Rating is required.",
	"rating.min":              "Rating is required.",
	"rating.max":              "Rating must be at most 5.",
	"reviewText.required":     "Review text cannot be empty.",
}

// fieldErrors flattens a validator error into per-field messages.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
			fields[fe.Field()] = msg
			continue
		}
		fields[fe.Field()] = genericFieldMessage(fe)
	}
	return fields
}

func genericFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "max":
		return "Must be at most " + fe.Param() + "."
	default:
		return "Invalid value."
	}
}

// parsePage clamps the page query parameter to ≥1.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
