package service

import (
	"errors"

	"agendamento/backend/internal/model"
	"agendamento/backend/internal/repository"
)

// ── Erros de autorização ──

var (
	ErrSemPermissaoCoordenadoria = errors.New("agendamento pertence a outra coordenadoria")
	ErrSemPermissaoMudarUnidade  = errors.New("sem permissão para alterar a coordenadoria do agendamento")
	ErrSemPermissaoTecnico       = errors.New("técnico deve ter permissão TEC e pertencer à sua coordenadoria")
	ErrSemPermissaoSemUnidade    = errors.New("usuário sem coordenadoria atribuída")
)

// Solicitante identidade de quem chama o serviço (extraída do JWT)
type Solicitante struct {
	ID              string
	Permissao       string
	CoordenadoriaID *string
}

func (s Solicitante) coordenadoria() string {
	if s.CoordenadoriaID == nil {
		return ""
	}
	return *s.CoordenadoriaID
}

// escopo aplica a visibilidade da permissão sobre o filtro explícito.
// ok=false indica resultado vazio garantido (sem unidade ou filtro fora do escopo).
func (s Solicitante) escopo(f repository.AgendamentoFiltro) (repository.AgendamentoFiltro, bool) {
	switch {
	case model.EscopoCoordenadoria(s.Permissao):
		unidade := s.coordenadoria()
		if unidade == "" {
			return f, false
		}
		if f.CoordenadoriaID != "" && f.CoordenadoriaID != unidade {
			return f, false
		}
		f.CoordenadoriaID = unidade
	case s.Permissao == model.PermissaoTEC:
		if f.TecnicoID != "" && f.TecnicoID != s.ID {
			return f, false
		}
		f.TecnicoID = s.ID
	}
	return f, true
}
