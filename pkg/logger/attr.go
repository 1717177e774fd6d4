package logger

import (
	"log/slog"
	"strconv"
)

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier. Empty IDs are dropped.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Service(name string) slog.Attr {
	return slog.String("service", name)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// FormID records the identifier of the form a submission belongs to.
func FormID(id string) slog.Attr {
	return slog.String("form_id", id)
}

// Field records a form field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Fields records how many form fields were processed.
func Fields(n int) slog.Attr {
	return slog.Int("fields", n)
}

// Binder records which binder variant handled a submission.
func Binder(kind string) slog.Attr {
	return slog.String("binder", kind)
}
