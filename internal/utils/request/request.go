package request

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// New builds a client that honours HTTP(S)_PROXY and never retries.
// A zero timeout keeps the transport default.
func New(timeout time.Duration) *resty.Client {
	c := resty.New().SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment, // 通用适配环境变量
	}).SetRetryCount(0)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

var Request = New(0)
