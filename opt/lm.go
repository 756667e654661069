// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package opt implements a bounded Levenberg-Marquardt solver for
// derivative-free nonlinear least squares
package opt

import (
	"math"
	"sync/atomic"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// StopReason distinguishes why a run terminated
type StopReason int

const (
	ConvGrad    StopReason = iota // gradient norm below tolerance
	ConvStep                      // step norm below tolerance
	ConvObj                       // objective below tolerance
	MaxIter                       // iteration cap reached
	Interrupted                   // external cancellation observed
	Failed                        // residual evaluation or linear solve failed
)

// String returns a reason code name
func (r StopReason) String() string {
	switch r {
	case ConvGrad:
		return "converged: small gradient"
	case ConvStep:
		return "converged: small step"
	case ConvObj:
		return "converged: small objective"
	case MaxIter:
		return "maximum iterations reached"
	case Interrupted:
		return "interrupted"
	}
	return "failed"
}

// Config holds solver options. Tolerance defaults are conservative; see
// DefaultConfig.
type Config struct {
	Bounded bool    // enforce box constraints by projection of trial points
	FdStep  float64 // relative step for forward-difference Jacobians
	Tau     float64 // initial damping factor relative to max diag(JᵀJ)
	GradTol float64 // stop when ‖Jᵀf‖∞ <= GradTol
	StepTol float64 // stop when ‖δp‖ <= StepTol·(‖p‖ + StepTol)
	ObjTol  float64 // stop when ‖f‖² <= ObjTol
	MaxIt   int     // iteration cap
	Verbose bool    // print per-iteration summary
}

// DefaultConfig returns conservative defaults (tight tolerances, 100
// iteration cap)
func DefaultConfig() *Config {
	return &Config{
		FdStep:  1e-6,
		Tau:     1e-3,
		GradTol: 1e-12,
		StepTol: 1e-12,
		ObjTol:  1e-15,
		MaxIt:   100,
	}
}

// Report holds per-run diagnostics
type Report struct {
	InitCost  float64    // ‖f(p₀)‖²
	FinalCost float64    // ‖f(p)‖² at termination
	Gnorm     float64    // final gradient ∞-norm
	StepNorm  float64    // last accepted step norm
	It        int        // iterations performed
	Nfev      int        // residual evaluations
	Njev      int        // finite-difference Jacobian evaluations
	Reason    StopReason // stop reason code
}

// ResidFcn evaluates the residual vector f at parameters p. A returned error
// is non-recoverable for the run.
type ResidFcn func(f, p []float64) error

// Solver runs bounded or unbounded Levenberg-Marquardt iterations on
// unscaled physical parameter values
type Solver struct {

	// configuration
	Cfg *Config

	// bounds and scales (sizes must equal the parameter count)
	Lo    []float64 // lower bounds (Bounded only)
	Hi    []float64 // upper bounds (Bounded only)
	Scale []float64 // magnitude scale per parameter; entries must be nonzero

	// cancellation flag; set via Cancel from any goroutine
	stop int32
}

// NewSolver returns a solver with the given configuration. lo/hi may be nil
// when cfg.Bounded is false; scale may be nil for unit scales.
func NewSolver(cfg *Config, lo, hi, scale []float64) *Solver {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Solver{Cfg: cfg, Lo: lo, Hi: hi, Scale: scale}
}

// Cancel requests termination; the flag is observed at the next residual
// evaluation
func (o *Solver) Cancel() {
	atomic.StoreInt32(&o.stop, 1)
}

// cancelled reports whether Cancel was called
func (o *Solver) cancelled() bool {
	return atomic.LoadInt32(&o.stop) != 0
}

// project clamps p into the box [Lo, Hi]
func (o *Solver) project(p []float64) {
	if !o.Cfg.Bounded {
		return
	}
	for j := 0; j < len(p); j++ {
		if p[j] < o.Lo[j] {
			p[j] = o.Lo[j]
		}
		if p[j] > o.Hi[j] {
			p[j] = o.Hi[j]
		}
	}
}

// scaleOf returns the magnitude scale of parameter j
func (o *Solver) scaleOf(j int) float64 {
	if o.Scale == nil {
		return 1.0
	}
	return o.Scale[j]
}

// jacobian fills J[i][j] = ∂f_i/∂p_j by forward differences, reusing f₀ =
// f(p). p is restored on return.
func (o *Solver) jacobian(J [][]float64, p, f0, fwrk []float64, fcn ResidFcn, rep *Report) (err error) {
	n, m := len(f0), len(p)
	for j := 0; j < m; j++ {
		pj := p[j]
		h := o.Cfg.FdStep * math.Max(math.Abs(pj), math.Abs(o.scaleOf(j)))
		if o.Cfg.Bounded && pj+h > o.Hi[j] {
			h = -h // step inward at the upper bound
		}
		p[j] = pj + h
		if err = fcn(fwrk, p); err != nil {
			p[j] = pj
			return
		}
		rep.Nfev++
		for i := 0; i < n; i++ {
			J[i][j] = (fwrk[i] - f0[i]) / h
		}
		p[j] = pj
	}
	rep.Njev++
	return
}

// Run minimizes ½‖f(p)‖² starting from p, which holds the solution estimate
// on return (also after interruption). n is the residual size.
func (o *Solver) Run(p []float64, n int, fcn ResidFcn) (rep *Report, err error) {

	// sizes
	m := len(p)
	rep = new(Report)
	rep.Reason = Failed
	if m == 0 {
		return nil, chk.Err("there are no parameters to optimize")
	}
	if n < m {
		return nil, chk.Err("system is under-determined: %d residuals for %d parameters", n, m)
	}
	if o.Cfg.Bounded {
		if len(o.Lo) != m || len(o.Hi) != m {
			return nil, chk.Err("bounds have sizes %d and %d but there are %d parameters", len(o.Lo), len(o.Hi), m)
		}
		o.project(p)
	}

	// workspace
	f := make([]float64, n)
	fnew := make([]float64, n)
	fwrk := make([]float64, n)
	J := la.MatAlloc(n, m)
	g := make([]float64, m)       // Jᵀf
	diag := make([]float64, m)    // diag(JᵀJ)
	dp := mat.NewVecDense(m, nil) // step
	gv := mat.NewVecDense(m, nil)
	A := mat.NewSymDense(m, nil) // JᵀJ
	Ad := mat.NewSymDense(m, nil)
	pnew := make([]float64, m)

	// initial residual
	if err = fcn(f, p); err != nil {
		return nil, chk.Err("initial residual evaluation failed:\n%v", err)
	}
	rep.Nfev++
	if o.cancelled() {
		rep.Reason = Interrupted
		return
	}
	cost := floats.Dot(f, f)
	rep.InitCost = cost
	rep.FinalCost = cost
	if cost <= o.Cfg.ObjTol {
		rep.Reason = ConvObj
		return
	}

	// normal matrix and gradient from the current Jacobian
	buildNormal := func() {
		for j := 0; j < m; j++ {
			g[j] = 0
			for i := 0; i < n; i++ {
				g[j] += J[i][j] * f[i]
			}
			for k := j; k < m; k++ {
				s := 0.0
				for i := 0; i < n; i++ {
					s += J[i][j] * J[i][k]
				}
				A.SetSym(j, k, s)
			}
			diag[j] = A.At(j, j)
		}
	}

	// first Jacobian
	if err = o.jacobian(J, p, f, fwrk, fcn, rep); err != nil {
		return nil, chk.Err("Jacobian evaluation failed:\n%v", err)
	}
	if o.cancelled() {
		rep.Reason = Interrupted
		return
	}
	buildNormal()

	// initial damping
	maxdiag := 0.0
	for j := 0; j < m; j++ {
		maxdiag = math.Max(maxdiag, diag[j])
	}
	mu := o.Cfg.Tau * maxdiag
	if mu == 0 {
		mu = o.Cfg.Tau
	}
	nu := 2.0

	// iterations
	var chol mat.Cholesky
	for rep.It = 0; rep.It < o.Cfg.MaxIt; rep.It++ {

		// gradient convergence
		rep.Gnorm = 0
		for j := 0; j < m; j++ {
			rep.Gnorm = math.Max(rep.Gnorm, math.Abs(g[j]))
		}
		if rep.Gnorm <= o.Cfg.GradTol {
			rep.Reason = ConvGrad
			return
		}

		// damped normal equations: (A + μI) δp = -g
		for j := 0; j < m; j++ {
			for k := j; k < m; k++ {
				v := A.At(j, k)
				if k == j {
					v += mu
				}
				Ad.SetSym(j, k, v)
			}
			gv.SetVec(j, -g[j])
		}
		if ok := chol.Factorize(Ad); !ok {
			mu *= nu
			nu *= 2
			continue
		}
		if err = chol.SolveVecTo(dp, gv); err != nil {
			mu *= nu
			nu *= 2
			continue
		}

		// trial point (projected into the box when bounded)
		for j := 0; j < m; j++ {
			pnew[j] = p[j] + dp.AtVec(j)
		}
		o.project(pnew)
		stepnorm := 0.0
		pnorm := 0.0
		for j := 0; j < m; j++ {
			d := pnew[j] - p[j]
			stepnorm += d * d
			pnorm += p[j] * p[j]
		}
		stepnorm = math.Sqrt(stepnorm)
		pnorm = math.Sqrt(pnorm)
		if stepnorm <= o.Cfg.StepTol*(pnorm+o.Cfg.StepTol) {
			rep.StepNorm = stepnorm
			rep.Reason = ConvStep
			return
		}

		// trial residual
		if err = fcn(fnew, pnew); err != nil {
			return rep, chk.Err("residual evaluation failed at iteration %d:\n%v", rep.It, err)
		}
		rep.Nfev++
		if o.cancelled() {
			rep.Reason = Interrupted
			return rep, nil
		}
		costnew := floats.Dot(fnew, fnew)

		// gain ratio: actual over predicted reduction
		pred := 0.0
		for j := 0; j < m; j++ {
			d := pnew[j] - p[j]
			pred += d * (mu*d - g[j])
		}
		rho := (cost - costnew) / math.Max(pred, MINPRED)

		if o.Cfg.Verbose {
			io.Pf("it=%3d cost=%13.6e mu=%10.3e rho=%10.3e step=%10.3e\n", rep.It, costnew, mu, rho, stepnorm)
		}

		if costnew < cost && rho > 0 {
			// accept
			copy(p, pnew)
			copy(f, fnew)
			cost = costnew
			rep.FinalCost = cost
			rep.StepNorm = stepnorm
			if cost <= o.Cfg.ObjTol {
				rep.Reason = ConvObj
				return
			}
			if err = o.jacobian(J, p, f, fwrk, fcn, rep); err != nil {
				return rep, chk.Err("Jacobian evaluation failed at iteration %d:\n%v", rep.It, err)
			}
			if o.cancelled() {
				rep.Reason = Interrupted
				return rep, nil
			}
			buildNormal()
			mu *= math.Max(1.0/3.0, 1.0-math.Pow(2.0*rho-1.0, 3))
			nu = 2.0
		} else {
			// reject and increase damping
			mu *= nu
			nu *= 2
		}
	}
	rep.Reason = MaxIter
	return
}

// MINPRED avoids division by a vanishing predicted reduction
const MINPRED = 1e-300
