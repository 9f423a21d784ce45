package output

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackFormatter serializes the report as MessagePack, keyed by the same
// field names as the JSON export. Decimal amounts are stored through their
// binary encoding.
type MsgpackFormatter struct{}

func (m MsgpackFormatter) Name() string { return "msgpack" }

func (m MsgpackFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMsgpackReport reads a report written by MsgpackFormatter.
func DecodeMsgpackReport(data []byte) (*Report, error) {
	var report Report
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}
