package ui

import (
	"bufio"
	"context"
	"io"
	"strings"

	"premium-quote/core/types"
	qerrors "premium-quote/internal/errors"
)

// Question is one interactive field prompt
type Question struct {
	Field  string
	Prompt string
}

// ApplicantQuestions are asked in order by interactive entry
var ApplicantQuestions = []Question{
	{types.FieldName, "Name"},
	{types.FieldRegion, "Region"},
	{types.FieldAge, "Age"},
	{types.FieldSex, "Sex (male/female/other)"},
	{types.FieldBMI, "BMI"},
	{types.FieldSmoker, "Smoker? (yes/no)"},
	{types.FieldVehicleType, "Vehicle Type (car/bike/truck)"},
	{types.FieldPolicyType, "Policy Type (basic/family/premium)"},
	{types.FieldAccidentHistory, "Number of past accidents"},
	{types.FieldCreditScore, "Credit Score (300-850)"},
	{types.FieldRegionRiskScore, "Region Risk Score (0.0 - 1.0)"},
	{types.FieldMarketVolatilityIndex, "Market Volatility Index (0.0 - 1.0)"},
	{types.FieldDrivingExperience, "Years of Driving Experience"},
	{types.FieldChildren, "Number of children"},
}

// Prompter reads applicant fields from a terminal
type Prompter struct {
	reader *bufio.Reader
	w      *Writer
}

// NewPrompter creates a prompter reading from in and prompting on w
func NewPrompter(in io.Reader, w *Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		w:      w,
	}
}

// Applicant asks every question and returns the answers as a raw record.
// Blank answers are left out so they normalize as missing fields.
func (p *Prompter) Applicant(ctx context.Context) (types.RawRecord, error) {
	p.w.Println("")
	p.w.Println("%s", p.w.style(HeaderStyle, "Please enter applicant details:"))

	raw := make(types.RawRecord, len(ApplicantQuestions))
	for _, q := range ApplicantQuestions {
		answer, err := p.ask(ctx, q.Prompt)
		if err != nil {
			return nil, err
		}
		if answer != "" {
			raw[q.Field] = answer
		}
	}
	return raw, nil
}

func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	p.w.Print("%s: ", p.w.style(BoldStyle, prompt))
	input, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && input != "" {
			return strings.TrimSpace(input), nil
		}
		if err == io.EOF {
			return "", qerrors.Input("input terminated")
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}
