// Package ontap implements the shared request/response layer for NetApp
// ONTAP REST management endpoints: authenticated request issuance, HAL-link
// pagination, asynchronous job polling and error normalization. Nodes hand it
// a method, a path, a body and a query and get back a normalized JSON
// envelope or a normalized error.
package ontap

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

const defaultPort = 443

var validate = validator.New()

// Target identifies one cluster management endpoint plus the credentials to
// reach it. Targets are request-scoped: every call receives its own value and
// nothing is cached between calls.
type Target struct {
	Host             string `json:"host"     validate:"required"`
	Port             int    `json:"port"     validate:"gte=0,lte=65535"`
	Username         string `json:"username" validate:"required"`
	Password         string `json:"password" validate:"required"`
	AllowInsecureTLS bool   `json:"allow_insecure_tls"`
}

// Validate checks that the target carries everything needed to issue a request.
func (t Target) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}

	return nil
}

// baseURL returns "https://{host}:{port}" with the port defaulted to 443.
func (t Target) baseURL() string {
	port := t.Port
	if port == 0 {
		port = defaultPort
	}

	return "https://" + t.Host + ":" + strconv.Itoa(port)
}
