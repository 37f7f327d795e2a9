package format

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Built-in format names.
const (
	Date     = "date"
	DateTime = "datetime"
	Time     = "time"
	UUID     = "uuid"
	Email    = "email"
	URL      = "url"
	IPv4     = "ipv4"
	IPv6     = "ipv6"
	GeoPoint = "geoPoint"
	Int      = "int"
	Number   = "number"
	Bool     = "bool"
	String   = "string"
	Trim     = "trim"
	Lower    = "lower"
	Upper    = "upper"
	Base64   = "base64"
	Hex      = "hex"
)

const dateLayout = "2006-01-02"

func builtin() *Registry {
	r := NewRegistry()

	r.RegisterValidator(Date, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := time.Parse(dateLayout, s)
		return err == nil
	})
	r.RegisterConverter(Date, func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, Reason(fmt.Sprintf("expected a date string, got %T", v))
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, Reason("not a valid date (want YYYY-MM-DD): " + s)
		}
		return t, nil
	})

	r.RegisterValidator(DateTime, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	})
	r.RegisterConverter(DateTime, func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, Reason(fmt.Sprintf("expected an RFC 3339 string, got %T", v))
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, Reason("not a valid RFC 3339 timestamp: " + s)
		}
		return t, nil
	})

	r.RegisterValidator(Time, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := time.Parse("15:04:05", s)
		return err == nil
	})

	r.RegisterValidator(UUID, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	})
	r.RegisterConverter(UUID, func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, Reason(fmt.Sprintf("expected a uuid string, got %T", v))
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, Reason("not a valid uuid: " + s)
		}
		// canonical lowercase text form
		return id.String(), nil
	})

	r.RegisterValidator(Email, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		a, err := mail.ParseAddress(s)
		return err == nil && a.Address == s
	})

	r.RegisterValidator(URL, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	})

	r.RegisterValidator(IPv4, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		ip := net.ParseIP(s)
		return ip != nil && ip.To4() != nil
	})
	r.RegisterValidator(IPv6, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		ip := net.ParseIP(s)
		return ip != nil && ip.To4() == nil
	})

	// geoPoint accepts a [lat, lon] pair of numbers within WGS84 bounds.
	r.RegisterValidator(GeoPoint, func(v any) bool {
		seq, ok := v.([]any)
		if !ok || len(seq) != 2 {
			return false
		}
		lat, okLat := toFloat(seq[0])
		lon, okLon := toFloat(seq[1])
		return okLat && okLon && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
	})

	r.RegisterValidator(Int, func(v any) bool {
		switch n := v.(type) {
		case int, int64:
			return true
		case float64:
			return n == float64(int64(n))
		case string:
			_, err := strconv.ParseInt(n, 10, 64)
			return err == nil
		}
		return false
	})
	r.RegisterConverter(Int, func(v any) (any, error) {
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n != float64(int64(n)) {
				return nil, Reason(fmt.Sprintf("not an integer: %v", n))
			}
			return int64(n), nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, Reason("not an integer: " + n)
			}
			return i, nil
		}
		return nil, Reason(fmt.Sprintf("cannot convert %T to int", v))
	})

	r.RegisterValidator(Number, func(v any) bool {
		_, ok := toFloat(v)
		if ok {
			return true
		}
		s, isStr := v.(string)
		if !isStr {
			return false
		}
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	})
	r.RegisterConverter(Number, func(v any) (any, error) {
		if f, ok := toFloat(v); ok {
			return f, nil
		}
		if s, ok := v.(string); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, Reason("not a number: " + s)
			}
			return f, nil
		}
		return nil, Reason(fmt.Sprintf("cannot convert %T to number", v))
	})

	r.RegisterValidator(Bool, func(v any) bool {
		switch s := v.(type) {
		case bool:
			return true
		case string:
			_, err := strconv.ParseBool(s)
			return err == nil
		}
		return false
	})
	r.RegisterConverter(Bool, func(v any) (any, error) {
		switch s := v.(type) {
		case bool:
			return s, nil
		case string:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, Reason("not a boolean: " + s)
			}
			return b, nil
		}
		return nil, Reason(fmt.Sprintf("cannot convert %T to bool", v))
	})

	r.RegisterValidator(String, func(v any) bool {
		_, ok := v.(string)
		return ok
	})
	r.RegisterConverter(String, func(v any) (any, error) {
		switch s := v.(type) {
		case string:
			return s, nil
		case bool, float64, int, int64:
			return fmt.Sprint(s), nil
		}
		return nil, Reason(fmt.Sprintf("cannot convert %T to string", v))
	})

	stringNormalizer := func(name string, fn func(string) string) {
		r.RegisterValidator(name, func(v any) bool {
			_, ok := v.(string)
			return ok
		})
		r.RegisterConverter(name, func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, Reason(fmt.Sprintf("expected a string, got %T", v))
			}
			return fn(s), nil
		})
	}
	stringNormalizer(Trim, strings.TrimSpace)
	stringNormalizer(Lower, strings.ToLower)
	stringNormalizer(Upper, strings.ToUpper)

	r.RegisterValidator(Base64, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	})
	r.RegisterConverter(Base64, func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, Reason(fmt.Sprintf("expected a base64 string, got %T", v))
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, Reason("not valid base64: " + s)
		}
		return b, nil
	})

	r.RegisterValidator(Hex, func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := hex.DecodeString(s)
		return err == nil
	})

	return r
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
