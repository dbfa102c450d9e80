package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseSize bounds the body read from the translations endpoint
const maxResponseSize = 64 << 20

// RequestURL returns the URL fetched for language. The endpoint is used as a
// prefix, so it normally ends with "/" or "=".
func (l *Loader) RequestURL(language string) string {
	return l.endpoint + FormatLanguageCode(language, l.format, l.mappings(language))
}

func (l *Loader) loadRemote(ctx context.Context, language string) (Catalog, error) {
	code := FormatLanguageCode(language, l.format, l.mappings(language))
	url := l.endpoint + code

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &SourceError{Language: language, Source: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	l.logger.Debug("fetching translations", "language", language, "code", code, "url", url)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &SourceError{Language: language, Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceError{Language: language, Source: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &SourceError{Language: language, Source: url, Err: err}
	}

	records, err := parseRecords(body)
	if err != nil {
		return nil, &MalformedError{Language: language, Source: url, Err: err}
	}

	return &APICatalog{Language: language, Code: code, Records: records}, nil
}

// parseRecords decodes a JSON array of {translationCode, value} records.
// Any other top-level shape is an error.
func parseRecords(body []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array of translations")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for i, item := range raw {
		var rec struct {
			TranslationCode any             `json:"translationCode"`
			Value           json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(item, &rec); err != nil {
			// Non-object entries carry no key
			continue
		}
		code, ok := rec.TranslationCode.(string)
		if !ok || code == "" {
			continue
		}
		value, err := decodeRecordValue(rec.Value)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, code, err)
		}
		records = append(records, Record{TranslationCode: code, Value: value})
	}
	return records, nil
}

// decodeRecordValue keeps scalars typed and renders objects/arrays as their
// JSON text so every value is comparable
func decodeRecordValue(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case map[string]any, []any:
		return string(raw), nil
	}
	return v, nil
}
