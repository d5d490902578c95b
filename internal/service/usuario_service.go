package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"agendamento/backend/internal/dto"
	"agendamento/backend/internal/model"
	"agendamento/backend/internal/repository"
	"agendamento/backend/pkg/diretorio"
	"agendamento/backend/pkg/paginacao"
)

// ── Erros de usuário ──

var (
	ErrNaoEncontradoNoDiretorio   = errors.New("nenhuma pessoa encontrada no diretório")
	ErrLoginJaCadastrado          = errors.New("login já cadastrado")
	ErrCoordenadoriaNaoEncontrada = errors.New("coordenadoria não encontrada")
	ErrDesativarProprioUsuario    = errors.New("não é possível desativar o próprio usuário")
)

// UsuarioService técnicos, diretório e administração de usuários
type UsuarioService interface {
	// ListarTecnicos técnicos ativos; PONTO_FOCAL e COORDENADOR só veem a própria unidade
	ListarTecnicos(ctx context.Context, coordenadoriaID string, sol Solicitante) ([]dto.UsuarioResponse, error)
	BuscarNoDiretorio(ctx context.Context, nome string) (*dto.DiretorioResponse, error)

	// Criar cadastra a partir do diretório; login inativo é reativado com os novos dados
	Criar(ctx context.Context, req *dto.CriarUsuarioRequest, sol Solicitante) (*dto.UsuarioResponse, error)
	Buscar(ctx context.Context, req *dto.BuscarUsuariosRequest) (*dto.Pagina[dto.UsuarioResponse], error)
	BuscarPorID(ctx context.Context, id string) (*dto.UsuarioResponse, error)
	Atualizar(ctx context.Context, id string, req *dto.AtualizarUsuarioRequest, sol Solicitante) (*dto.UsuarioResponse, error)
	Desativar(ctx context.Context, id string, sol Solicitante) error
	Autorizar(ctx context.Context, id string) (*dto.UsuarioResponse, error)
}

type usuarioService struct {
	repo      *repository.Repository
	diretorio Diretorio
	logger    *zap.Logger
}

// NewUsuarioService cria o serviço
func NewUsuarioService(repo *repository.Repository, dir Diretorio, logger *zap.Logger) UsuarioService {
	return &usuarioService{repo: repo, diretorio: dir, logger: logger}
}

func (s *usuarioService) ListarTecnicos(ctx context.Context, coordenadoriaID string, sol Solicitante) ([]dto.UsuarioResponse, error) {
	if model.EscopoCoordenadoria(sol.Permissao) {
		unidade := sol.coordenadoria()
		if unidade == "" || (coordenadoriaID != "" && coordenadoriaID != unidade) {
			return []dto.UsuarioResponse{}, nil
		}
		coordenadoriaID = unidade
	}

	tecnicos, err := s.repo.Usuario.ListTecnicos(ctx, coordenadoriaID)
	if err != nil {
		s.logger.Error("falha ao listar técnicos", zap.Error(err))
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(tecnicos))
	for i := range tecnicos {
		out = append(out, paraUsuarioResponse(&tecnicos[i]))
	}
	return out, nil
}

func (s *usuarioService) BuscarNoDiretorio(ctx context.Context, nome string) (*dto.DiretorioResponse, error) {
	if s.diretorio == nil {
		return nil, ErrDiretorioIndisponivel
	}
	p, err := s.diretorio.BuscarPorNome(ctx, nome)
	if err != nil {
		if errors.Is(err, diretorio.ErrNaoEncontrado) {
			return nil, ErrNaoEncontradoNoDiretorio
		}
		s.logger.Error("falha na busca do diretório", zap.String("nome", nome), zap.Error(err))
		return nil, ErrDiretorioIndisponivel
	}
	return &dto.DiretorioResponse{Login: p.Login, Nome: p.Nome, Email: p.Email}, nil
}

// ═══════════════════════════════════════════════════════════
// Administração
// ═══════════════════════════════════════════════════════════

// permissaoConcedida ADM não concede DEV; o pedido é rebaixado para ADM
func permissaoConcedida(pedida, concedente string) string {
	if pedida == model.PermissaoDEV && concedente != model.PermissaoDEV {
		return model.PermissaoADM
	}
	return pedida
}

func (s *usuarioService) Criar(ctx context.Context, req *dto.CriarUsuarioRequest, sol Solicitante) (*dto.UsuarioResponse, error) {
	login := strings.ToLower(strings.TrimSpace(req.Login))

	existente, err := s.repo.Usuario.GetByLogin(ctx, login)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("falha ao consultar login", zap.String("login", login), zap.Error(err))
		return nil, err
	}
	if existente != nil && existente.Status {
		return nil, ErrLoginJaCadastrado
	}
	if err := s.validarCoordenadoria(ctx, req.CoordenadoriaID); err != nil {
		return nil, err
	}

	if s.diretorio == nil {
		return nil, ErrDiretorioIndisponivel
	}
	p, err := s.diretorio.BuscarPorLogin(ctx, login)
	if err != nil {
		if errors.Is(err, diretorio.ErrNaoEncontrado) {
			return nil, ErrNaoEncontradoNoDiretorio
		}
		s.logger.Error("falha na busca do diretório", zap.String("login", login), zap.Error(err))
		return nil, ErrDiretorioIndisponivel
	}

	permissao := permissaoConcedida(req.Permissao, sol.Permissao)
	if existente != nil {
		existente.Nome = p.Nome
		existente.Email = strings.ToLower(p.Email)
		existente.Permissao = permissao
		existente.CoordenadoriaID = req.CoordenadoriaID
		existente.Coordenadoria = nil
		existente.Status = true
		if err := s.repo.Usuario.Update(ctx, existente); err != nil {
			s.logger.Error("falha ao reativar usuário", zap.String("login", login), zap.Error(err))
			return nil, err
		}
		s.logger.Info("usuário reativado", zap.String("login", login), zap.String("por", sol.ID))
		return s.BuscarPorID(ctx, existente.ID)
	}

	u := &model.Usuario{
		Nome:            p.Nome,
		Login:           login,
		Email:           strings.ToLower(p.Email),
		Permissao:       permissao,
		Status:          true,
		CoordenadoriaID: req.CoordenadoriaID,
	}
	if err := s.repo.Usuario.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLoginJaCadastrado
		}
		s.logger.Error("falha ao criar usuário", zap.String("login", login), zap.Error(err))
		return nil, err
	}
	s.logger.Info("usuário criado", zap.String("login", login), zap.String("permissao", permissao), zap.String("por", sol.ID))
	return s.BuscarPorID(ctx, u.ID)
}

func (s *usuarioService) Buscar(ctx context.Context, req *dto.BuscarUsuariosRequest) (*dto.Pagina[dto.UsuarioResponse], error) {
	filtro := repository.UsuarioFiltro{Busca: req.Busca, Permissao: req.Permissao}
	switch req.Status {
	case "ATIVO":
		ativo := true
		filtro.Status = &ativo
	case "INATIVO":
		inativo := false
		filtro.Status = &inativo
	}

	total, err := s.repo.Usuario.Count(ctx, filtro)
	if err != nil {
		s.logger.Error("falha ao contar usuários", zap.Error(err))
		return nil, err
	}
	if total == 0 {
		return dto.PaginaVazia[dto.UsuarioResponse](), nil
	}

	pagina, limite := paginacao.VerificaLimite(req.Pagina, req.Limite, total)
	lista, err := s.repo.Usuario.List(ctx, filtro, paginacao.Offset(pagina, limite), limite)
	if err != nil {
		s.logger.Error("falha ao listar usuários", zap.Error(err))
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(lista))
	for i := range lista {
		out = append(out, paraUsuarioResponse(&lista[i]))
	}
	return &dto.Pagina[dto.UsuarioResponse]{Total: total, Pagina: pagina, Limite: limite, Data: out}, nil
}

func (s *usuarioService) BuscarPorID(ctx context.Context, id string) (*dto.UsuarioResponse, error) {
	u, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}
	r := paraUsuarioResponse(u)
	return &r, nil
}

func (s *usuarioService) Atualizar(ctx context.Context, id string, req *dto.AtualizarUsuarioRequest, sol Solicitante) (*dto.UsuarioResponse, error) {
	u, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nome != nil {
		u.Nome = strings.TrimSpace(*req.Nome)
	}
	if req.Permissao != nil {
		u.Permissao = permissaoConcedida(*req.Permissao, sol.Permissao)
	}
	if req.CoordenadoriaID != nil {
		if err := s.validarCoordenadoria(ctx, req.CoordenadoriaID); err != nil {
			return nil, err
		}
		u.CoordenadoriaID = req.CoordenadoriaID
		u.Coordenadoria = nil
	}
	if req.Status != nil {
		if !*req.Status && u.ID == sol.ID {
			return nil, ErrDesativarProprioUsuario
		}
		u.Status = *req.Status
	}

	if err := s.repo.Usuario.Update(ctx, u); err != nil {
		s.logger.Error("falha ao atualizar usuário", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.BuscarPorID(ctx, id)
}

func (s *usuarioService) Desativar(ctx context.Context, id string, sol Solicitante) error {
	if id == sol.ID {
		return ErrDesativarProprioUsuario
	}
	return s.alterarStatus(ctx, id, false)
}

func (s *usuarioService) Autorizar(ctx context.Context, id string) (*dto.UsuarioResponse, error) {
	if err := s.alterarStatus(ctx, id, true); err != nil {
		return nil, err
	}
	return s.BuscarPorID(ctx, id)
}

func (s *usuarioService) alterarStatus(ctx context.Context, id string, status bool) error {
	u, err := s.carregar(ctx, id)
	if err != nil {
		return err
	}
	if u.Status == status {
		return nil
	}
	u.Status = status
	if err := s.repo.Usuario.Update(ctx, u); err != nil {
		s.logger.Error("falha ao alterar status do usuário", zap.String("id", id), zap.Bool("status", status), zap.Error(err))
		return err
	}
	s.logger.Info("status do usuário alterado", zap.String("login", u.Login), zap.Bool("status", status))
	return nil
}

func (s *usuarioService) carregar(ctx context.Context, id string) (*model.Usuario, error) {
	u, err := s.repo.Usuario.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}
	return u, nil
}

func (s *usuarioService) validarCoordenadoria(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := s.repo.Coordenadoria.GetByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCoordenadoriaNaoEncontrada
		}
		return err
	}
	return nil
}
