package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Metrics are the held-out classification results. Class 1 (significant
// delay) is the positive class.
type Metrics struct {
	TP, FP, TN, FN int

	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	AUC       float64
}

// Evaluate compares the continuous scores against the true 0/1 labels.
// The confusion counts come from thresholding at cutoff; AUC comes from
// the raw scores.
func Evaluate(scores, labels []float64, cutoff float64) Metrics {
	var m Metrics
	predicted := Classify(scores, cutoff)
	for i, p := range predicted {
		switch {
		case p == 1 && labels[i] == 1:
			m.TP++
		case p == 1 && labels[i] == 0:
			m.FP++
		case p == 0 && labels[i] == 0:
			m.TN++
		default:
			m.FN++
		}
	}

	total := m.TP + m.FP + m.TN + m.FN
	if total > 0 {
		m.Accuracy = float64(m.TP+m.TN) / float64(total)
	}
	if m.TP+m.FP > 0 {
		m.Precision = float64(m.TP) / float64(m.TP+m.FP)
	}
	if m.TP+m.FN > 0 {
		m.Recall = float64(m.TP) / float64(m.TP+m.FN)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	m.AUC = auc(scores, labels)
	return m
}

// Line renders the metrics in the report format printed to stdout.
func (m Metrics) Line() string {
	return fmt.Sprintf("Accuracy: %.4f Precision: %.4f Recall: %.4f F1-score: %.4f AUC: %.4f",
		m.Accuracy, m.Precision, m.Recall, m.F1, m.AUC)
}

// auc ranks the raw scores against the labels; stat.ROC wants the scores
// in ascending order with their classes alongside.
func auc(scores, labels []float64) float64 {
	n := len(scores)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	y := make([]float64, n)
	classes := make([]bool, n)
	for rank, i := range idx {
		y[rank] = scores[i]
		classes[rank] = labels[i] == 1
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}
