package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
)

// payloadValues reads the request body as JSON when the Content-Type says
// so, otherwise as form data. JSON scalars are stringified so the
// validation layer sees the same shape either way. Missing fields are
// simply absent from the map, which validation treats as empty input.
func payloadValues(r *http.Request) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "application/json" {
		return jsonValues(r.Body)
	}
	if err := r.ParseForm(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "parse form", err)
	}
	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	return values, nil
}

func jsonValues(body io.Reader) (map[string]string, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "decode json body", err)
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch typed := value.(type) {
		case nil:
			// Explicit null reads the same as an absent field.
		case string:
			values[key] = typed
		case json.Number:
			values[key] = typed.String()
		case bool:
			values[key] = strconv.FormatBool(typed)
		default:
			return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s must be a string or number.", key)
		}
	}
	return values, nil
}
