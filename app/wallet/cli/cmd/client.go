package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var errMissingAddress = errors.New("wallet address is required, use --address")

// client is shared by the commands to talk to the node.
var client = http.Client{
	Timeout: 2 * time.Minute,
}

// errorResponse is the form used by the node for failures.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// call sends the request to the node and decodes the response into resp.
func call(method string, url string, req any, resp any) error {
	var body io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	r, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}
	r.Header.Set("Content-Type", "application/json")

	res, err := client.Do(r)
	if err != nil {
		return fmt.Errorf("calling node: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var er errorResponse
		if err := json.NewDecoder(res.Body).Decode(&er); err != nil {
			return fmt.Errorf("node responded with status %d", res.StatusCode)
		}

		if len(er.Fields) > 0 {
			return fmt.Errorf("%s: %v", er.Error, er.Fields)
		}
		return errors.New(er.Error)
	}

	if resp == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
