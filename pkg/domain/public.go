package domain

import "github.com/go-faster/jx"

// PublicRecord is the fixed response schema. Copied fields hold the upstream
// JSON verbatim; an empty value is encoded as null.
type PublicRecord struct {
	Status                jx.Raw
	UltimaAtualizacao     jx.Raw
	CNPJ                  jx.Raw
	Tipo                  jx.Raw
	Porte                 jx.Raw
	Nome                  jx.Raw
	Fantasia              jx.Raw
	Abertura              jx.Raw
	AtividadePrincipal    jx.Raw
	AtividadesSecundarias jx.Raw
	NaturezaJuridica      jx.Raw
	Logradouro            jx.Raw
	Numero                jx.Raw
	Complemento           jx.Raw
	CEP                   jx.Raw
	Bairro                jx.Raw
	Municipio             jx.Raw
	UF                    jx.Raw
	Email                 jx.Raw
	Telefone              jx.Raw
	EFR                   jx.Raw
	Situacao              jx.Raw
	DataSituacao          jx.Raw
	MotivoSituacao        jx.Raw
	SituacaoEspecial      jx.Raw
	DataSituacaoEspecial  jx.Raw
	CapitalSocial         jx.Raw
	QSA                   jx.Raw
	Billing               jx.Raw

	// Anos is the YearlyStatusList, "<year>:<status>" from 2019 to the current year.
	Anos []string
}

type field struct {
	name  string
	value *jx.Raw
}

// fields lists the copied fields in response order.
func (p *PublicRecord) fields() []field {
	return []field{
		{"status", &p.Status},
		{"ultima_atualizacao", &p.UltimaAtualizacao},
		{"cnpj", &p.CNPJ},
		{"tipo", &p.Tipo},
		{"porte", &p.Porte},
		{"nome", &p.Nome},
		{"fantasia", &p.Fantasia},
		{"abertura", &p.Abertura},
		{"atividade_principal", &p.AtividadePrincipal},
		{"atividades_secundarias", &p.AtividadesSecundarias},
		{"natureza_juridica", &p.NaturezaJuridica},
		{"logradouro", &p.Logradouro},
		{"numero", &p.Numero},
		{"complemento", &p.Complemento},
		{"cep", &p.CEP},
		{"bairro", &p.Bairro},
		{"municipio", &p.Municipio},
		{"uf", &p.UF},
		{"email", &p.Email},
		{"telefone", &p.Telefone},
		{"efr", &p.EFR},
		{"situacao", &p.Situacao},
		{"data_situacao", &p.DataSituacao},
		{"motivo_situacao", &p.MotivoSituacao},
		{"situacao_especial", &p.SituacaoEspecial},
		{"data_situacao_especial", &p.DataSituacaoEspecial},
		{"capital_social", &p.CapitalSocial},
		{"qsa", &p.QSA},
		{"billing", &p.Billing},
	}
}

// PublicFields returns the names of the fields copied from the upstream record,
// in response order.
func PublicFields() []string {
	var p PublicRecord
	fs := p.fields()
	names := make([]string, 0, len(fs))
	for _, f := range fs {
		names = append(names, f.name)
	}

	return names
}

// FromRecord copies every public field out of rec. Absent fields stay empty.
func FromRecord(rec Record) *PublicRecord {
	out := &PublicRecord{}
	for _, f := range out.fields() {
		if raw, ok := rec[f.name]; ok {
			*f.value = raw
		}
	}

	return out
}

// Encode writes the record as a JSON object.
func (p *PublicRecord) Encode(e *jx.Encoder) {
	e.ObjStart()
	for _, f := range p.fields() {
		e.FieldStart(f.name)
		if len(*f.value) == 0 {
			e.Null()

			continue
		}
		e.Raw(*f.value)
	}

	e.FieldStart("anos")
	e.ArrStart()
	for _, y := range p.Anos {
		e.Str(y)
	}
	e.ArrEnd()
	e.ObjEnd()
}

// MarshalJSON implements json.Marshaler.
func (p *PublicRecord) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	p.Encode(&e)

	return e.Bytes(), nil
}
