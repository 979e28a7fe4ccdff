package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
)

var testTime = time.Date(2025, time.January, 2, 15, 4, 5, 6e6, time.UTC)

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	h := NewTerminalHandler(out, false)

	r := slog.NewRecord(testTime, slog.LevelInfo, "a message", 0)
	r.AddAttrs(slog.String("foo", "bar"))
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	want := "INFO [01-02|15:04:05.006] a message" + strings.Repeat(" ", termMsgJust-len("a message")) + " foo=bar\n"
	if have := out.String(); have != want {
		t.Errorf("wrong output\nhave %q\nwant %q", have, want)
	}
}

func TestTerminalHandlerWithAttrs(t *testing.T) {
	out := new(bytes.Buffer)
	h := NewTerminalHandlerWithLevel(out, slog.LevelInfo, false).WithAttrs([]slog.Attr{slog.String("cmd", "sign-tx")})

	debug := slog.NewRecord(testTime, slog.LevelDebug, "hidden", 0)
	if h.Enabled(context.Background(), debug.Level) {
		t.Fatal("debug record enabled at info level")
	}
	r := slog.NewRecord(testTime, slog.LevelWarn, "signed", 0)
	r.AddAttrs(slog.Any("payload", []byte{0xde, 0xad}))
	h.Handle(context.Background(), r)

	have := out.String()
	if !strings.HasPrefix(have, "WARN [01-02|15:04:05.006] signed") {
		t.Errorf("wrong prefix: %q", have)
	}
	if !strings.HasSuffix(have, " cmd=sign-tx payload=0xdead\n") {
		t.Errorf("wrong attributes: %q", have)
	}
}

func TestFormatSlogValue(t *testing.T) {
	big64, _ := new(big.Int).SetString("18446744073709551616", 10)
	for i, tt := range []struct {
		v    slog.Value
		want string
	}{
		{slog.Int64Value(1000000), "1,000,000"},
		{slog.Int64Value(-1234567), "-1,234,567"},
		{slog.Uint64Value(99999), "99999"},
		{slog.AnyValue(big64), "18,446,744,073,709,551,616"},
		{slog.AnyValue(new(big.Int).Neg(big64)), "-18,446,744,073,709,551,616"},
		{slog.AnyValue(new(uint256.Int).Lsh(uint256.NewInt(1), 64)), "18,446,744,073,709,551,616"},
		{slog.AnyValue((*big.Int)(nil)), "<nil>"},
		{slog.AnyValue([]byte{}), "0x"},
		{slog.AnyValue([]byte{0x05, 0x39}), "0x0539"},
		{slog.StringValue("two words"), `"two words"`},
		{slog.StringValue("quote\""), `"quote\""`},
		{slog.BoolValue(true), "true"},
	} {
		if have := string(FormatSlogValue(tt.v, nil)); have != tt.want {
			t.Errorf("test %d: have %q, want %q", i, have, tt.want)
		}
	}
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Info("Encoded transaction", "type", 2, "data", []byte{0x01, 0x02}, "fee", big.NewInt(1000000))

	var rec map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json output %q: %v", out.String(), err)
	}
	if rec["lvl"] != "info" {
		t.Errorf("wrong level %v", rec["lvl"])
	}
	if rec["msg"] != "Encoded transaction" {
		t.Errorf("wrong message %v", rec["msg"])
	}
	if rec["data"] != "0x0102" {
		t.Errorf("wrong data %v", rec["data"])
	}
	if rec["fee"] != "1000000" {
		t.Errorf("wrong fee %v", rec["fee"])
	}
	if _, ok := rec["t"]; !ok {
		t.Error("missing time key")
	}
}

func TestLogfmtHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(LogfmtHandlerWithLevel(out, slog.LevelWarn))
	l.Info("skipped")
	if out.Len() != 0 {
		t.Fatalf("info record written at warn level: %q", out.String())
	}
	l.Warn("low balance", "account", "alice")
	have := out.String()
	for _, want := range []string{"lvl=warn", `msg="low balance"`, "account=alice"} {
		if !strings.Contains(have, want) {
			t.Errorf("output %q misses %q", have, want)
		}
	}
}

func TestOddArguments(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Info("odd", "key")
	if !strings.Contains(out.String(), errorKey) {
		t.Errorf("odd argument count not reported: %q", out.String())
	}
}

func TestFromLegacyLevel(t *testing.T) {
	for lvl, want := range map[int]slog.Level{
		-1: LevelCrit,
		0:  LevelCrit,
		1:  slog.LevelError,
		2:  slog.LevelWarn,
		3:  slog.LevelInfo,
		4:  slog.LevelDebug,
		5:  LevelTrace,
		9:  levelMaxVerbosity,
	} {
		if have := FromLegacyLevel(lvl); have != want {
			t.Errorf("level %d: have %v, want %v", lvl, have, want)
		}
	}
}

func TestRootLogger(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	// The default root discards everything, groups included.
	Root().Handler().WithGroup("g").WithAttrs(nil)

	out := new(bytes.Buffer)
	SetDefault(NewLogger(LogfmtHandler(out)))
	New("cmd", "decode-rlp").Debug("decoded", "items", 3)
	if have := out.String(); !strings.Contains(have, "cmd=decode-rlp") || !strings.Contains(have, "items=3") {
		t.Errorf("wrong output %q", have)
	}
}
