package dto

// UsuarioResponse usuário sem dados sensíveis
type UsuarioResponse struct {
	ID              string              `json:"id"`
	Nome            string              `json:"nome"`
	Login           string              `json:"login"`
	Email           string              `json:"email"`
	Permissao       string              `json:"permissao"`
	Status          bool                `json:"status"`
	CoordenadoriaID *string             `json:"coordenadoriaId"`
	Coordenadoria   *ReferenciaResponse `json:"coordenadoria,omitempty"`
}

// DiretorioResponse entrada encontrada no diretório
type DiretorioResponse struct {
	Login string `json:"login"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

// BuscarDiretorioRequest busca por nome
type BuscarDiretorioRequest struct {
	Nome string `form:"nome" binding:"required,min=3,max=255"`
}

// ListarTecnicosRequest técnicos por coordenadoria
type ListarTecnicosRequest struct {
	CoordenadoriaID string `form:"coordenadoriaId" binding:"omitempty,uuid"`
}

// CriarUsuarioRequest cadastro a partir do diretório; nome e e-mail vêm do LDAP
type CriarUsuarioRequest struct {
	Login           string  `json:"login"           binding:"required,min=3,max=50"`
	Permissao       string  `json:"permissao"       binding:"required,permissao"`
	CoordenadoriaID *string `json:"coordenadoriaId" binding:"omitempty,uuid"`
}

// AtualizarUsuarioRequest atualização parcial; nil mantém o valor atual
type AtualizarUsuarioRequest struct {
	Nome            *string `json:"nome"            binding:"omitempty,min=2,max=255"`
	Permissao       *string `json:"permissao"       binding:"omitempty,permissao"`
	CoordenadoriaID *string `json:"coordenadoriaId" binding:"omitempty,uuid"`
	Status          *bool   `json:"status"`
}

// BuscarUsuariosRequest filtros da listagem administrativa
type BuscarUsuariosRequest struct {
	PaginacaoRequest
	Busca     string `form:"busca"     binding:"omitempty,max=100"`
	Status    string `form:"status"    binding:"omitempty,oneof=ATIVO INATIVO"`
	Permissao string `form:"permissao" binding:"omitempty,permissao"`
}
