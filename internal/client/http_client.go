package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/treeforest/basex"
	"github.com/treeforest/basex/internal/server"
	"github.com/treeforest/basex/internal/service"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HttpClient 调用远端 basex 服务
type HttpClient struct {
	baseUrl string
	client  *http.Client
}

func NewHttpClient(baseUrl string) *HttpClient {
	return &HttpClient{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HttpClient) Encode(alphabet string, data []byte) (string, error) {
	body, err := json.Marshal(server.EncodeRequest{Alphabet: alphabet, Data: data})
	if err != nil {
		return "", err
	}
	b, err := c.Post("/encode", body)
	if err != nil {
		return "", err
	}
	resp := server.EncodeResponse{}
	if err = json.Unmarshal(b, &resp); err != nil {
		return "", fmt.Errorf("unmarshal encode response failed: %v", err)
	}
	return resp.Encoded, nil
}

func (c *HttpClient) Decode(alphabet, encoded string) ([]byte, error) {
	body, err := json.Marshal(server.DecodeRequest{Alphabet: alphabet, Encoded: encoded})
	if err != nil {
		return nil, err
	}
	b, err := c.Post("/decode", body)
	if err != nil {
		return nil, err
	}
	resp := server.DecodeResponse{}
	if err = json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal decode response failed: %v", err)
	}
	if resp.Data == nil {
		resp.Data = []byte{}
	}
	return resp.Data, nil
}

func (c *HttpClient) Random(alphabet string, n int) (string, error) {
	b, err := c.Get(fmt.Sprintf("/random/%s?n=%d", url.PathEscape(alphabet), n))
	if err != nil {
		return "", err
	}
	resp := server.RandomResponse{}
	if err = json.Unmarshal(b, &resp); err != nil {
		return "", fmt.Errorf("unmarshal random response failed: %v", err)
	}
	return resp.Encoded, nil
}

func (c *HttpClient) Alphabets() ([]service.Entry, error) {
	b, err := c.Get("/alphabets")
	if err != nil {
		return nil, err
	}
	entries := make([]service.Entry, 0)
	if err = json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal alphabets failed: %v", err)
	}
	return entries, nil
}

func (c *HttpClient) Register(name, symbols string) error {
	body, err := json.Marshal(server.RegisterRequest{Symbols: symbols})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, c.Url("/alphabets/"+url.PathEscape(name)), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create put request failed:%v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.Do(req)
	return err
}

func (c *HttpClient) Remove(name string) error {
	req, err := http.NewRequest(http.MethodDelete, c.Url("/alphabets/"+url.PathEscape(name)), nil)
	if err != nil {
		return fmt.Errorf("create delete request failed:%v", err)
	}
	_, err = c.Do(req)
	return err
}

func (c *HttpClient) Url(route string) string {
	return fmt.Sprintf("%s%s", c.baseUrl, route)
}

func (c *HttpClient) Get(route string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.Url(route), nil)
	if err != nil {
		return nil, fmt.Errorf("create get request failed:%v", err)
	}
	return c.Do(req)
}

func (c *HttpClient) Post(route string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, c.Url(route), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create post request failed:%v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.Do(req)
}

// Do sends req and returns the body of a 200 response. A 404 is reported as
// basex.ErrUnknownAlphabet.
func (c *HttpClient) Do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}

	b, err := ioutil.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read resp body failed:%v", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := struct {
			Error string `json:"error"`
		}{}
		if json.Unmarshal(b, &msg) != nil || msg.Error == "" {
			msg.Error = string(b)
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", basex.ErrUnknownAlphabet, msg.Error)
		}
		return nil, fmt.Errorf("status code:%d error:%s", resp.StatusCode, msg.Error)
	}

	return b, nil
}
