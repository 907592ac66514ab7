package popia

import (
	"github.com/lexkit/lexengine/predicate"
	"github.com/lexkit/lexengine/rule"
)

// Chapter 3 condition predicates.
const (
	// Accountability holds when a responsible party ensures compliance.
	Accountability = "accountability?"

	// ProcessingLimitation holds when processing is lawful and minimal.
	ProcessingLimitation = "processing-limitation?"

	// PurposeSpecification holds when the purpose is specific and
	// explicitly defined.
	PurposeSpecification = "purpose-specification?"

	// FurtherProcessingLimitation holds when further processing is
	// compatible with the original purpose.
	FurtherProcessingLimitation = "further-processing-limitation?"

	// InformationQuality holds when the information is complete and
	// accurate.
	InformationQuality = "information-quality?"

	// Openness holds when the data subject is aware of the collection.
	Openness = "openness?"

	// SecuritySafeguards holds when integrity and confidentiality are
	// secured.
	SecuritySafeguards = "security-safeguards?"

	// SubjectParticipation holds when the data subject can access and
	// correct their information.
	SubjectParticipation = "data-subject-participation?"

	// LawfulProcessing holds when all eight conditions are met.
	LawfulProcessing = "lawful-processing?"
)

// Section 11 justification predicates.
const (
	// Consent holds when the data subject consented to the processing.
	Consent = "consent?"

	// ContractNecessity holds when processing is necessary to perform
	// a contract with the data subject.
	ContractNecessity = "contract-necessity?"

	// LegalObligation holds when processing is required by law.
	LegalObligation = "legal-obligation?"

	// LegitimateInterest holds when processing pursues a legitimate
	// interest of the responsible party or a third party.
	LegitimateInterest = "legitimate-interest?"

	// ProcessingJustified holds when at least one section 11 ground
	// applies.
	ProcessingJustified = "processing-justified?"
)

// Fact attribute keys the primitives read.
const (
	AttrAccountability       = "accountability"
	AttrProcessingLimitation = "processing_limitation"
	AttrPurposeSpecified     = "purpose_specified"
	AttrCompatiblePurpose    = "compatible_further_purpose"
	AttrInformationQuality   = "information_quality"
	AttrOpenness             = "openness"
	AttrSecuritySafeguards   = "security_safeguards"
	AttrSubjectParticipation = "subject_participation"
	AttrConsent              = "consent"
	AttrContractNecessity    = "contract_necessity"
	AttrLegalObligation      = "legal_obligation"
	AttrLegitimateInterest   = "legitimate_interest"
)

// Register adds the data-protection vocabulary to reg. The registry
// must not be sealed.
func Register(reg *predicate.Registry) error {
	primitives := []struct {
		name string
		fn   predicate.PrimitiveFunc
		desc string
	}{
		{Accountability, rule.BoolAttr(AttrAccountability), "A responsible party ensures compliance"},
		{ProcessingLimitation, rule.BoolAttr(AttrProcessingLimitation), "Processing is lawful and minimal"},
		{PurposeSpecification, rule.BoolAttr(AttrPurposeSpecified), "Purpose is specific and explicitly defined"},
		{FurtherProcessingLimitation, rule.BoolAttr(AttrCompatiblePurpose), "Further processing is compatible with the original purpose"},
		{InformationQuality, rule.BoolAttr(AttrInformationQuality), "Information is complete and accurate"},
		{Openness, rule.BoolAttr(AttrOpenness), "Data subject is aware of the collection"},
		{SecuritySafeguards, rule.BoolAttr(AttrSecuritySafeguards), "Integrity and confidentiality are secured"},
		{SubjectParticipation, rule.BoolAttr(AttrSubjectParticipation), "Data subject can access and correct their information"},
		{Consent, rule.BoolAttr(AttrConsent), "Data subject consented"},
		{ContractNecessity, rule.BoolAttr(AttrContractNecessity), "Processing is necessary for a contract"},
		{LegalObligation, rule.BoolAttr(AttrLegalObligation), "Processing is required by law"},
		{LegitimateInterest, rule.BoolAttr(AttrLegitimateInterest), "Processing pursues a legitimate interest"},
	}

	for _, p := range primitives {
		if err := reg.RegisterPrimitive(p.name, p.fn, predicate.WithDescription(p.desc)); err != nil {
			return err
		}
	}

	composites := []struct {
		name string
		expr rule.Expr
		desc string
	}{
		{
			LawfulProcessing,
			rule.All(
				Accountability,
				ProcessingLimitation,
				PurposeSpecification,
				FurtherProcessingLimitation,
				InformationQuality,
				Openness,
				SecuritySafeguards,
				SubjectParticipation,
			),
			"All eight chapter 3 conditions are met",
		},
		{
			ProcessingJustified,
			rule.Any(Consent, ContractNecessity, LegalObligation, LegitimateInterest),
			"At least one section 11 ground applies",
		},
	}

	for _, c := range composites {
		if err := rule.Define(reg, c.name, c.expr, predicate.WithDescription(c.desc)); err != nil {
			return err
		}
	}

	return nil
}

// NewRegistry builds and seals a registry holding only the
// data-protection vocabulary.
func NewRegistry() (*predicate.Registry, error) {
	reg := predicate.New("popia")
	if err := Register(reg); err != nil {
		return nil, err
	}
	if err := reg.Seal(); err != nil {
		return nil, err
	}
	return reg, nil
}
