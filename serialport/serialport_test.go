package serialport

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"go.bug.st/serial"
)

// fakeSerial scripts the underlying serial.Port. Methods the tests do not
// exercise fall through to the embedded nil interface.
type fakeSerial struct {
	serial.Port

	reads     []fakeRead
	writes    []byte
	writeCap  int // max bytes accepted per Write call; 0 means all
	timeouts  []time.Duration
	dtrCalls  []bool
	rtsCalls  []bool
	modes     []*serial.Mode
	readErr   error
}

type fakeRead struct {
	data    []byte
	timeout bool
}

func (f *fakeSerial) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.reads) == 0 {
		return 0, nil // timeout per go.bug.st/serial semantics
	}
	r := &f.reads[0]
	if r.timeout {
		f.reads = f.reads[1:]
		return 0, nil
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	if len(r.data) == 0 {
		f.reads = f.reads[1:]
	}
	return n, nil
}

func (f *fakeSerial) Write(p []byte) (int, error) {
	n := len(p)
	if f.writeCap > 0 && n > f.writeCap {
		n = f.writeCap
	}
	f.writes = append(f.writes, p[:n]...)
	return n, nil
}

func (f *fakeSerial) SetReadTimeout(d time.Duration) error {
	f.timeouts = append(f.timeouts, d)
	return nil
}

func (f *fakeSerial) SetDTR(v bool) error {
	f.dtrCalls = append(f.dtrCalls, v)
	return nil
}

func (f *fakeSerial) SetRTS(v bool) error {
	f.rtsCalls = append(f.rtsCalls, v)
	return nil
}

func (f *fakeSerial) SetMode(m *serial.Mode) error {
	f.modes = append(f.modes, m)
	return nil
}

func TestReadLine(t *testing.T) {
	f := &fakeSerial{reads: []fakeRead{{data: []byte("OK\r\nextra")}}}
	p := &Port{port: f}

	line, err := p.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if !bytes.Equal(line, []byte("OK\r\n")) {
		t.Errorf("line = %q, want OK with terminator", line)
	}
}

func TestReadLineAcrossPartialReads(t *testing.T) {
	f := &fakeSerial{reads: []fakeRead{
		{data: []byte("Synchro")},
		{data: []byte("nized\r\n")},
	}}
	p := &Port{port: f}

	line, err := p.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if !bytes.Equal(line, []byte("Synchronized\r\n")) {
		t.Errorf("line = %q", line)
	}
}

func TestReadLineTimeout(t *testing.T) {
	f := &fakeSerial{reads: []fakeRead{
		{data: []byte("part")},
		{timeout: true},
	}}
	p := &Port{port: f}

	line, err := p.ReadLine()
	if !errors.Is(err, ErrReadTimeout) {
		t.Fatalf("error = %v, want ErrReadTimeout", err)
	}
	if !bytes.Equal(line, []byte("part")) {
		t.Errorf("partial line = %q, want %q", line, "part")
	}
}

func TestSetReadTimeout(t *testing.T) {
	f := &fakeSerial{}
	p := &Port{port: f}

	if err := p.SetReadTimeout(2 * time.Second); err != nil {
		t.Fatalf("SetReadTimeout: %v", err)
	}
	if err := p.SetReadTimeout(0); err != nil {
		t.Fatalf("SetReadTimeout(0): %v", err)
	}

	if len(f.timeouts) != 2 || f.timeouts[0] != 2*time.Second {
		t.Fatalf("timeouts = %v", f.timeouts)
	}
	if f.timeouts[1] != serial.NoTimeout {
		t.Errorf("zero duration = %v, want serial.NoTimeout", f.timeouts[1])
	}
}

func TestWriteRetriesPartialWrites(t *testing.T) {
	f := &fakeSerial{writeCap: 3}
	p := &Port{port: f}

	if err := p.Write([]byte("Synchronized\r\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(f.writes, []byte("Synchronized\r\n")) {
		t.Errorf("written = %q", f.writes)
	}
}

func TestSetControlLines(t *testing.T) {
	f := &fakeSerial{}
	p := &Port{port: f}

	if err := p.SetControlLines(true, true); err != nil {
		t.Fatalf("SetControlLines: %v", err)
	}
	if err := p.SetControlLines(false, true); err != nil {
		t.Fatalf("SetControlLines: %v", err)
	}

	if len(f.dtrCalls) != 2 || f.dtrCalls[0] != true || f.dtrCalls[1] != false {
		t.Errorf("DTR calls = %v", f.dtrCalls)
	}
	if len(f.rtsCalls) != 2 || f.rtsCalls[0] != true || f.rtsCalls[1] != true {
		t.Errorf("RTS calls = %v", f.rtsCalls)
	}
}

func TestSetMode(t *testing.T) {
	f := &fakeSerial{}
	p := &Port{port: f}

	if err := p.SetMode(230400, 2); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	if len(f.modes) != 1 {
		t.Fatalf("modes = %v", f.modes)
	}
	if f.modes[0].BaudRate != 230400 || f.modes[0].StopBits != serial.TwoStopBits {
		t.Errorf("mode = %+v", f.modes[0])
	}
}
