package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateRegister(email, name, password string) ValidationErrors {
	errs := make(ValidationErrors)

	// Email
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	// Name
	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len(name) < 2 {
		errs.Add("name", "Name must be at least 2 characters")
	} else if len(name) > 100 {
		errs.Add("name", "Name is too long")
	}

	// Password
	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateBrand(name, description, category string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Brand name is required")
	} else if len(name) < 2 {
		errs.Add("name", "Brand name must be at least 2 characters")
	} else if len(name) > 100 {
		errs.Add("name", "Brand name is too long")
	}

	if len(description) > 2000 {
		errs.Add("description", "Description is too long")
	}

	category = strings.TrimSpace(category)
	if category == "" {
		errs.Add("category", "Category is required")
	} else if len(category) > 100 {
		errs.Add("category", "Category is too long")
	}

	return errs
}

func ValidateProduct(name string, price float64, stock int) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Product name is required")
	} else if len(name) < 2 {
		errs.Add("name", "Product name must be at least 2 characters")
	} else if len(name) > 200 {
		errs.Add("name", "Product name is too long")
	}

	if price <= 0 {
		errs.Add("price", "Price must be greater than zero")
	}

	if stock < 0 {
		errs.Add("stock", "Stock cannot be negative")
	}

	return errs
}

func ValidatePost(content string) ValidationErrors {
	errs := make(ValidationErrors)

	content = strings.TrimSpace(content)
	if content == "" {
		errs.Add("content", "Content is required")
	} else if len(content) > 5000 {
		errs.Add("content", "Content is too long")
	}

	return errs
}

func ValidateComment(content string) ValidationErrors {
	errs := make(ValidationErrors)

	content = strings.TrimSpace(content)
	if content == "" {
		errs.Add("content", "Comment is required")
	} else if len(content) > 1000 {
		errs.Add("content", "Comment is too long")
	}

	return errs
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
