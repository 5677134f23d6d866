package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-nfc-checklist/internal/core/checklist"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(w io.Writer, hours []checklist.Hour) error {
	if hours == nil {
		hours = []checklist.Hour{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(hours, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
