// Package credentials loads terminal login data from a local JSON file.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultFile is the credentials file looked up in the working directory.
const DefaultFile = "mt5_credentials.json"

var (
	ErrNotFound = errors.New("credentials file not found")
	ErrInvalid  = errors.New("credentials file is not valid JSON")
)

// Placeholder values shipped in the example credentials file.
var placeholders = map[string]string{
	"login":    "YOUR_LOGIN_HERE",
	"password": "YOUR_PASSWORD_HERE",
	"server":   "YOUR_SERVER_HERE",
}

var validate = validator.New()

// Login is an account number given either as a JSON string or a number.
type Login string

// UnmarshalJSON accepts "12345" and 12345.
func (l *Login) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Login(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("login must be a string or a number: %s", string(data))
	}
	*l = Login(n.String())
	return nil
}

// Int64 parses the login as an account number.
func (l Login) Int64() (int64, error) {
	n, err := strconv.ParseInt(string(l), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("login %q is not numeric: %w", string(l), err)
	}
	return n, nil
}

// Credentials are read once at startup and never modified.
type Credentials struct {
	Login    Login  `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
	Server   string `json:"server" validate:"required"`
	Path     string `json:"path,omitempty"`
}

// Load reads credentials from path.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return &c, nil
}

// Validate checks that login, password and server are present and the login is numeric.
func (c *Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return fmt.Errorf("missing credentials: %s", strings.Join(fields, ", "))
		}
		return err
	}
	if _, err := c.Login.Int64(); err != nil {
		return err
	}
	return nil
}

// Placeholders returns the fields still holding template values.
func (c *Credentials) Placeholders() []string {
	var out []string
	if string(c.Login) == placeholders["login"] {
		out = append(out, "login")
	}
	if c.Password == placeholders["password"] {
		out = append(out, "password")
	}
	if c.Server == placeholders["server"] {
		out = append(out, "server")
	}
	return out
}

// HasPath reports whether an alternate terminal install path is configured and exists.
func (c *Credentials) HasPath() bool {
	if c.Path == "" {
		return false
	}
	_, err := os.Stat(c.Path)
	return err == nil
}
