package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// maxFormMemory объем multipart формы в памяти, остальное уходит во временные файлы
const maxFormMemory = 8 << 20

// ParseForm разбирает multipart или urlencoded форму
func ParseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

// FormFile возвращает первый найденный файл из перечисленных полей.
// Если файла нет, возвращает nil без ошибки.
func FormFile(r *http.Request, fields ...string) (multipart.File, error) {
	for _, field := range fields {
		file, _, err := r.FormFile(field)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("read form file %s: %w", field, err)
		}
	}
	return nil, nil
}

// ParseDate разбирает дату "2025-10-15"; полная метка RFC 3339 тоже принимается
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(domain.DateFormat, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
