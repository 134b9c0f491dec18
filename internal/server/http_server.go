package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/treeforest/basex"
	"github.com/treeforest/basex/dao"
	"github.com/treeforest/basex/internal/service"
	log "github.com/treeforest/logger"
	"net/http"
	"strconv"
)

const (
	requestIdHeader = "X-Request-Id"

	defRandomSize = 16   // random 默认字节数
	maxRandomSize = 4096 // random 最大字节数
)

type EncodeRequest struct {
	Alphabet string `json:"alphabet" binding:"required"`
	Data     []byte `json:"data"` // base64 in JSON
}

type EncodeResponse struct {
	Encoded string `json:"encoded"`
}

type DecodeRequest struct {
	Alphabet string `json:"alphabet" binding:"required"`
	Encoded  string `json:"encoded"`
}

type DecodeResponse struct {
	Data []byte `json:"data"`
}

type RegisterRequest struct {
	Symbols string `json:"symbols" binding:"required"`
}

type RandomResponse struct {
	Encoded string `json:"encoded"`
}

type HttpServer struct {
	port int
	svc  *service.Service
	srv  *http.Server
}

func NewHttpServer(port int, svc *service.Service) *HttpServer {
	s := &HttpServer{port: port, svc: svc}
	s.srv = &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: s.Handler()}
	return s
}

// Handler builds the gin engine serving the codec routes.
func (s *HttpServer) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestId())

	r.GET("/alphabets", s.handleGetAlphabets)
	r.PUT("/alphabets/:name", s.handlePutAlphabet)
	r.DELETE("/alphabets/:name", s.handleDeleteAlphabet)
	r.POST("/encode", s.handleEncode)
	r.POST("/decode", s.handleDecode)
	r.GET("/random/:alphabet", s.handleRandom)
	return r
}

// Run blocks until the server stops. A clean Shutdown returns nil.
func (s *HttpServer) Run() error {
	log.Infof("http server listening on %s", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server run failed: %v", err)
	}
	return nil
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	log.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}

func requestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIdHeader, id)
		c.Next()
		log.Debugf("[%s] %s %s %d", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

func (s *HttpServer) handleGetAlphabets(c *gin.Context) {
	entries, err := s.svc.Alphabets()
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *HttpServer) handlePutAlphabet(c *gin.Context) {
	req := RegisterRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request obj error"})
		return
	}
	if err := s.svc.Register(c.Param("name"), req.Symbols); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *HttpServer) handleDeleteAlphabet(c *gin.Context) {
	if err := s.svc.Remove(c.Param("name")); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *HttpServer) handleEncode(c *gin.Context) {
	req := EncodeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request obj error"})
		return
	}
	a, err := s.alphabet(req.Alphabet)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, EncodeResponse{Encoded: a.Encode(req.Data)})
}

func (s *HttpServer) handleDecode(c *gin.Context) {
	req := DecodeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request obj error"})
		return
	}
	a, err := s.alphabet(req.Alphabet)
	if err != nil {
		s.abort(c, err)
		return
	}
	data, err := a.Decode(req.Encoded)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, DecodeResponse{Data: data})
}

func (s *HttpServer) handleRandom(c *gin.Context) {
	n := defRandomSize
	if q := c.Query("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 0 || v > maxRandomSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid random size %q", q)})
			return
		}
		n = v
	}
	a, err := s.alphabet(c.Param("alphabet"))
	if err != nil {
		s.abort(c, err)
		return
	}
	encoded, err := a.Random(n)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, RandomResponse{Encoded: encoded})
}

// alphabet resolves name for a JSON route. Strings travel as JSON text, which
// cannot carry bytes above 0x7f unchanged, so other alphabets are refused.
func (s *HttpServer) alphabet(name string) (*basex.Alphabet, error) {
	a, err := s.svc.Resolve(name)
	if err != nil {
		return nil, err
	}
	if !a.IsASCII() {
		return nil, fmt.Errorf("%w: %s", basex.ErrAlphabetNotASCII, name)
	}
	return a, nil
}

// badRequest lists the errors caused by the request itself.
var badRequest = []error{
	basex.ErrAlphabetTooLong,
	basex.ErrAlphabetTooShort,
	basex.ErrAlphabetAmbiguous,
	basex.ErrAlphabetNotASCII,
	basex.ErrNotInAlphabet,
	service.ErrBuiltin,
	service.ErrNegativeSize,
	dao.ErrEmptyName,
}

func statusOf(err error) int {
	if errors.Is(err, basex.ErrUnknownAlphabet) {
		return http.StatusNotFound
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// abort answers 404 for unknown alphabets, 400 for invalid input and 500 for
// storage failures.
func (s *HttpServer) abort(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
	} else {
		log.Debugf("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
