package givenergy

import (
	"net"
	"testing"
	"time"
)

func TestSessionSendAndNextRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 256)
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		// echo back a holding-register response on the same address.
		resp := &ReadHoldingRegistersResponse{
			envelope:     transparentEnvelope{SlaveAddress: InverterAddress},
			BaseRegister: 0,
			Values:       []uint16{1, 2, 3},
		}
		_, _ = conn.Write(EncodeFrame(resp, "BG1234G567", "WF1234G567", InverterAddress))
		_ = n
	}()

	sess, err := Dial(DialConfig{Address: ln.Addr().String(), IOTimeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer sess.Close()

	req := &ReadHoldingRegistersRequest{BaseRegister: 0, Count: 3}
	if err := sess.Send(req, "", "", InverterAddress); err != nil {
		t.Fatalf("send: %v", err)
	}

	pdu, err := sess.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	resp, ok := pdu.(*ReadHoldingRegistersResponse)
	if !ok {
		t.Fatalf("expected *ReadHoldingRegistersResponse, got %T", pdu)
	}
	if len(resp.Values) != 3 || resp.Values[2] != 3 {
		t.Errorf("unexpected values: %v", resp.Values)
	}
	if resp.Envelope().InverterSerialNumber != "BG1234G567" {
		t.Errorf("unexpected inverter serial: %q", resp.Envelope().InverterSerialNumber)
	}

	<-serverDone
}

func TestSessionNextSurfacesFramingErrorThenContinues(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		good := &ReadHoldingRegistersResponse{
			envelope:     transparentEnvelope{SlaveAddress: InverterAddress},
			BaseRegister: 0,
			Values:       []uint16{42},
		}
		frame := EncodeFrame(good, "BG1234G567", "WF1234G567", InverterAddress)
		frame[len(frame)-1] ^= 0xff // corrupt the CRC
		_, _ = conn.Write(frame)

		resealCRC(frame)
		_, _ = conn.Write(frame)
	}()

	sess, err := Dial(DialConfig{Address: ln.Addr().String(), IOTimeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer sess.Close()

	if _, err := sess.Next(); err != ErrBadCRC {
		t.Fatalf("expected ErrBadCRC, got %v", err)
	}

	pdu, err := sess.Next()
	if err != nil {
		t.Fatalf("expected the resent frame to decode cleanly, got %v", err)
	}
	if _, ok := pdu.(*ReadHoldingRegistersResponse); !ok {
		t.Fatalf("expected *ReadHoldingRegistersResponse, got %T", pdu)
	}
}
