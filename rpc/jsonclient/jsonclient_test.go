// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoParams struct {
	Name string `json:"name"`
}

func newServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
			ID     uint64            `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch req.Method {
		case "Test.Echo":
			var p echoParams
			assert.NoError(t, json.Unmarshal(req.Params[0], &p))
			json.NewEncoder(w).Encode(map[string]interface{}{"id": req.ID, "result": map[string]string{"hello": p.Name}})
		case "Test.Fail":
			json.NewEncoder(w).Encode(map[string]interface{}{"id": req.ID, "error": map[string]interface{}{"code": -32000, "message": "module not installed"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestCall(t *testing.T) {
	srv := newServer(t)
	defer srv.Close()

	client, err := NewJSONClient(srv.URL)
	require.NoError(t, err)

	var res map[string]string
	require.NoError(t, client.Call("Test.Echo", &echoParams{Name: "juno"}, &res))
	assert.Equal(t, "juno", res["hello"])

	err = client.CallContext(context.Background(), "Test.Fail", nil, &res)
	rpcErr, ok := err.(*Error)
	require.True(t, ok, "%v", err)
	assert.Equal(t, -32000, rpcErr.Code)
	assert.Equal(t, "module not installed", rpcErr.Message)

	assert.Error(t, client.Call("Test.Missing", nil, &res))
}

func TestNewJSONClient(t *testing.T) {
	_, err := NewJSONClient("")
	assert.Error(t, err)
	client, err := NewJSONClient("localhost:8801")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8801", client.URL())
}
