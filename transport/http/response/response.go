package response

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/forkapi/errors"
)

const (
	// 成功响应常量
	StatusOK    = "ok"
	successCode = http.StatusOK

	// 错误为空时的兜底响应
	defaultErrorMessage = "service temporarily unavailable"
	defaultErrorCode    = http.StatusServiceUnavailable
)

// Meta 响应元信息，status_code 为业务状态码，与 HTTP 状态码无关
type Meta struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
}

// Envelope 统一响应信封 {"meta":{...},"data":...}，data 始终输出（可为 null）
type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

// reset 清空所有字段用于对象池复用
func (e *Envelope) reset() {
	e.Meta = Meta{}
	e.Data = nil
}

var envelopePool = sync.Pool{
	New: func() any {
		return &Envelope{}
	},
}

func acquireEnvelope() *Envelope {
	return envelopePool.Get().(*Envelope)
}

func releaseEnvelope(e *Envelope) {
	if e != nil {
		e.reset()
		envelopePool.Put(e)
	}
}

// New 创建响应信封
func New(statusCode int, status string, data any) *Envelope {
	return &Envelope{
		Meta: Meta{StatusCode: statusCode, Status: status},
		Data: data,
	}
}

// GinJSON 写入成功响应
func GinJSON(c *gin.Context, data any) {
	GinEnvelope(c, successCode, StatusOK, data)
}

// GinJSONE 写入错误响应：业务码与消息取自 errors.Error，HTTP 状态码仍为 200
func GinJSONE(c *gin.Context, err error) {
	if c == nil {
		return
	}
	defer c.Abort()

	if err == nil {
		GinEnvelope(c, defaultErrorCode, defaultErrorMessage, nil)
		return
	}

	e := errors.FromError(err)
	GinEnvelope(c, e.Code, e.Message, nil)
}

// GinEnvelope 写入任意信封
func GinEnvelope(c *gin.Context, statusCode int, status string, data any) {
	if c == nil {
		return
	}

	resp := acquireEnvelope()
	defer releaseEnvelope(resp)

	resp.Meta.StatusCode = statusCode
	resp.Meta.Status = status
	resp.Data = data
	c.JSON(http.StatusOK, resp)
}
