// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient 实现 JSON-RPC 2.0 over HTTP 的客户端
package jsonclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout 单次调用的超时
const DefaultTimeout = 30 * time.Second

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	client *http.Client
	id     uint64
}

// NewJSONClient produce a json object
func NewJSONClient(url string) (*JSONClient, error) {
	return NewJSONClientWithHTTP(url, &http.Client{Timeout: DefaultTimeout})
}

// NewJSONClientWithHTTP 使用给定的 http.Client
func NewJSONClientWithHTTP(url string, hc *http.Client) (*JSONClient, error) {
	if url == "" {
		return nil, errors.New("empty rpc address")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{url: url, client: hc}, nil
}

// URL 服务地址
func (client *JSONClient) URL() string {
	return client.url
}

type clientRequest struct {
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  [1]interface{} `json:"params"`
	ID      uint64         `json:"id"`
}

type clientResponse struct {
	ID     uint64           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  *Error           `json:"error"`
}

// Error 服务端返回的错误
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Call 使用默认 context 调用
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	return client.CallContext(context.Background(), method, params, resp)
}

// CallContext 调用 method, 结果解码到 resp
func (client *JSONClient) CallContext(ctx context.Context, method string, params, resp interface{}) error {
	req := &clientRequest{
		JSONRPC: "2.0",
		Method:  method,
		ID:      atomic.AddUint64(&client.id, 1),
	}
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, client.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	postresp, err := client.client.Do(httpReq)
	if err != nil {
		return errors.Wrapf(err, "post %s", method)
	}
	defer postresp.Body.Close()
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s", method)
	}
	if postresp.StatusCode != http.StatusOK {
		return errors.Errorf("%s: http status %d", method, postresp.StatusCode)
	}
	cresp := &clientResponse{}
	if err = json.Unmarshal(b, cresp); err != nil {
		return errors.Wrapf(err, "decode %s response", method)
	}
	if cresp.Error != nil {
		return cresp.Error
	}
	if cresp.Result == nil || resp == nil {
		return nil
	}
	return json.Unmarshal(*cresp.Result, resp)
}
