package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FitError reports a degenerate regression input.
type FitError struct {
	Reason string
	Err    error
}

func (e *FitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fit delay model: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fit delay model: %s", e.Reason)
}

func (e *FitError) Unwrap() error { return e.Err }

// Regression is an ordinary least squares fit on the 0/1 delay label.
// Thresholding its continuous output at 0.5 is the classifier. Not
// logistic regression: the two report different metrics.
type Regression struct {
	coef *mat.Dense
}

// Fit solves the least squares problem for X against the binary target y.
func Fit(x *mat.Dense, y []float64) (*Regression, error) {
	rows, cols := x.Dims()
	if len(y) != rows {
		return nil, &FitError{Reason: fmt.Sprintf("target length %d does not match %d rows", len(y), rows)}
	}
	if rows < cols {
		return nil, &FitError{Reason: fmt.Sprintf("%d rows cannot determine %d coefficients", rows, cols)}
	}
	if ones, zeros := countClasses(y); ones == 0 || zeros == 0 {
		return nil, &FitError{Reason: "training target contains a single class"}
	}

	var qr mat.QR
	qr.Factorize(x)

	coef := mat.NewDense(cols, 1, nil)
	if err := qr.SolveTo(coef, false, mat.NewDense(rows, 1, y)); err != nil {
		return nil, &FitError{Reason: "design matrix is rank deficient", Err: err}
	}
	return &Regression{coef: coef}, nil
}

// Coefficients returns the fitted parameters, intercept first.
func (r *Regression) Coefficients() []float64 {
	rows, _ := r.coef.Dims()
	out := make([]float64, rows)
	for i := range out {
		out[i] = r.coef.At(i, 0)
	}
	return out
}

// Scores returns the continuous regression output for each row of x.
func (r *Regression) Scores(x *mat.Dense) []float64 {
	rows, _ := x.Dims()
	var prod mat.Dense
	prod.Mul(x, r.coef)
	out := make([]float64, rows)
	for i := range out {
		out[i] = prod.At(i, 0)
	}
	return out
}

// Classify thresholds the continuous scores at cutoff into 0/1 labels.
func Classify(scores []float64, cutoff float64) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		if s > cutoff {
			out[i] = 1
		}
	}
	return out
}

func countClasses(y []float64) (ones, zeros int) {
	for _, v := range y {
		if v == 1 {
			ones++
		} else {
			zeros++
		}
	}
	return ones, zeros
}
