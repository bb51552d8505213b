package httpclient

import (
	"errors"
	"testing"
)

func TestUnwrapEnvelope(t *testing.T) {
	data, err := unwrapEnvelope(200, []byte(`{"code":0,"msg":"success","data":{"a":1}}`))
	if err != nil || string(data) != `{"a":1}` {
		t.Fatalf("data=%s err=%v", data, err)
	}

	data, err = unwrapEnvelope(200, []byte(`[1,2]`))
	if err != nil || string(data) != `[1,2]` {
		t.Fatalf("array body should pass through, got %s err=%v", data, err)
	}

	data, err = unwrapEnvelope(204, nil)
	if err != nil || data != nil {
		t.Fatalf("empty body should yield nil, got %s err=%v", data, err)
	}

	_, err = unwrapEnvelope(200, []byte(`{"code":1001}`))
	var server *ServerError
	if !errors.As(err, &server) || server.Message != "request failed (1001)" {
		t.Fatalf("unexpected err %v", err)
	}
}

func TestDecode(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	got, err := Decode[[]item]([]byte(`[{"name":"x"}]`))
	if err != nil || len(got) != 1 || got[0].Name != "x" {
		t.Fatalf("Decode = %+v err=%v", got, err)
	}
	empty, err := Decode[[]item]([]byte("null"))
	if err != nil || empty != nil {
		t.Fatalf("null should decode to zero value")
	}
	if _, err := Decode[item]([]byte(`{`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNormalizeUnknownErrorIsConfig(t *testing.T) {
	nerr := normalize(errors.New("weird"))
	if nerr.Message != MsgRequestConfig {
		t.Fatalf("Message = %q", nerr.Message)
	}
	var config *RequestConfigError
	if !errors.As(nerr, &config) {
		t.Fatalf("expected RequestConfigError cause")
	}
}
