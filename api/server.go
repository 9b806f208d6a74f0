// Package api serves proof generation and verification over HTTP.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sovchain/mint-verifier/circuit"
	"github.com/sovchain/mint-verifier/prover"
	"github.com/sovchain/mint-verifier/replay"
	"github.com/sovchain/mint-verifier/types"
	"github.com/sovchain/mint-verifier/verifier"
)

// Server wires the engines to HTTP handlers. The prover and replay store are
// optional: a verify-only deployment leaves the prover nil, and without a store
// nonces are not tracked.
type Server struct {
	prover   *prover.Prover
	verifier *verifier.Verifier
	replay   replay.Store
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *Metrics
}

type ProveRequest struct {
	types.WitnessRaw
	Nonce uint64 `json:"nonce"`
	Epoch uint64 `json:"epoch"`
}

type VerifyResponse struct {
	Valid bool `json:"valid"`
}

type VerifyingKeyResponse struct {
	Version      string        `json:"version"`
	PublicInputs int           `json:"publicInputs"`
	Move         hexutil.Bytes `json:"move"`
}

func NewServer(p *prover.Prover, v *verifier.Verifier, store replay.Store, log zerolog.Logger) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Server{
		prover:   p,
		verifier: v,
		replay:   store,
		log:      log,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests(), s.metrics.Middleware())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v1.POST("/prove", s.prove)
	v1.POST("/verify", s.verify)
	v1.GET("/verifying-key", s.verifyingKey)
	v1.GET("/verifying-key/solidity", s.solidity)
	return router
}

func healthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "ok",
		"message": "Health check passed",
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) prove(c *gin.Context) {
	if s.prover == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "proving is not enabled on this server"})
		return
	}

	var req ProveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := req.Witness()
	if err != nil {
		s.fail(c, err)
		return
	}

	start := time.Now()
	proof, pub, err := s.prover.ProveMint(w, req.Nonce, req.Epoch)
	if err != nil {
		s.metrics.proofs.WithLabelValues("error").Inc()
		s.fail(c, err)
		return
	}
	s.metrics.proveDuration.Observe(time.Since(start).Seconds())
	s.metrics.proofs.WithLabelValues("ok").Inc()

	c.JSON(http.StatusOK, types.NewProofBundle(proof, pub))
}

func (s *Server) verify(c *gin.Context) {
	var bundle types.ProofBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	proof, pub, err := bundle.Decode()
	if err != nil {
		s.metrics.verifications.WithLabelValues("malformed").Inc()
		s.fail(c, err)
		return
	}

	start := time.Now()
	ok, err := s.verifier.Verify(proof, pub)
	s.metrics.verifyDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.verifications.WithLabelValues("malformed").Inc()
		s.fail(c, err)
		return
	}
	if !ok {
		s.metrics.verifications.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusOK, VerifyResponse{Valid: false})
		return
	}

	if s.replay != nil {
		// keyed on the reduced value, the verifier accepts any representative mod r
		authority := pub.Canonical().AuthorityHash
		if err := s.replay.Advance(authority, pub.Nonce); err != nil {
			s.metrics.verifications.WithLabelValues("replay").Inc()
			s.fail(c, err)
			return
		}
	}
	s.metrics.verifications.WithLabelValues("valid").Inc()
	c.JSON(http.StatusOK, VerifyResponse{Valid: true})
}

func (s *Server) verifyingKey(c *gin.Context) {
	c.JSON(http.StatusOK, VerifyingKeyResponse{
		Version:      circuit.Version,
		PublicInputs: s.verifier.NumPublicInputs(),
		Move:         s.verifier.ExportForMove(),
	})
}

func (s *Server) solidity(c *gin.Context) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.verifier.ExportSolidity(c.Writer); err != nil {
		s.log.Error().Err(err).Msg("failed to export solidity verifier")
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor separates caller mistakes from server faults.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidWitness),
		errors.Is(err, types.ErrSerialization),
		errors.Is(err, types.ErrInvalidPublicInput):
		return http.StatusBadRequest
	case errors.Is(err, replay.ErrReplay):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
