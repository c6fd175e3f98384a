package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "date", value: "2025-10-15", want: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2025-10-15T13:45:00Z", want: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)},
		{name: "empty", value: "  ", want: time.Time{}},
		{name: "garbage", value: "15.10.2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestFormFile(t *testing.T) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("username", "jean"))
	part, err := form.CreateFormFile("profileImage", "me.gif")
	require.NoError(t, err)
	_, err = part.Write([]byte("GIF89a"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	r := httptest.NewRequest(http.MethodPut, "/auth/edit-profile", &body)
	r.Header.Set("Content-Type", form.FormDataContentType())
	require.NoError(t, ParseForm(r))

	file, err := FormFile(r, "profile", "profileImage")
	require.NoError(t, err)
	require.NotNil(t, file)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data))
	assert.Equal(t, "jean", r.FormValue("username"))

	missing, err := FormFile(r, "image")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFormFile_NotMultipart(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/car/1", bytes.NewBufferString("plateNumber=RAB+123A"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, ParseForm(r))

	file, err := FormFile(r, "image")
	assert.NoError(t, err)
	assert.Nil(t, file)
	assert.Equal(t, "RAB 123A", r.FormValue("plateNumber"))
}
