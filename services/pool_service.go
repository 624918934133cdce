package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/germarr/static-worldcup/brackets"
	"github.com/germarr/static-worldcup/codec"
	"github.com/germarr/static-worldcup/models"
	"github.com/germarr/static-worldcup/repositories"
	"github.com/germarr/static-worldcup/utils"
)

const (
	maxPoolNameLength    = 50
	maxDisplayNameLength = 30
	maxBracketDataLength = 500

	maxCodeAttempts    = 5
	defaultMemberLimit = 50
)

type CreatePoolInput struct {
	Name        string `json:"name"`
	CreatorName string `json:"creator_name"`
	BracketData string `json:"bracket_data"`
}

// CreatePoolResult carries the tokens exactly once; they are never
// retrievable again.
type CreatePoolResult struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	CreatorToken string `json:"creator_token"`
	MemberToken  string `json:"member_token"`
}

type JoinPoolInput struct {
	DisplayName string `json:"display_name"`
	BracketData string `json:"bracket_data"`
}

type JoinPoolResult struct {
	MemberToken string `json:"member_token"`
	PoolName    string `json:"pool_name"`
	PoolCode    string `json:"pool_code"`
}

type PoolService interface {
	Create(ctx context.Context, input CreatePoolInput) (*CreatePoolResult, error)
	Get(ctx context.Context, code string, limit int) (*models.Pool, error)
	Join(ctx context.Context, code string, input JoinPoolInput) (*JoinPoolResult, error)
	UpdateBracket(ctx context.Context, code, displayName, memberToken, bracketData string) error
	Leave(ctx context.Context, code, displayName, memberToken string) error
	Delete(ctx context.Context, code, creatorToken string) error
}

type poolService struct {
	poolRepo repositories.PoolRepository
	hub      *brackets.Hub
}

func NewPoolService(poolRepo repositories.PoolRepository, hub *brackets.Hub) PoolService {
	return &poolService{
		poolRepo: poolRepo,
		hub:      hub,
	}
}

func (s *poolService) Create(ctx context.Context, input CreatePoolInput) (*CreatePoolResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPoolNameRequired
	}
	if len(name) > maxPoolNameLength {
		return nil, fmt.Errorf("%w: pool name exceeds %d characters", ErrValidationFailed, maxPoolNameLength)
	}
	creatorName := strings.TrimSpace(input.CreatorName)
	if err := validateMemberInput(creatorName, input.BracketData); err != nil {
		return nil, err
	}

	creatorToken, err := utils.GenerateToken()
	if err != nil {
		return nil, err
	}
	creatorHash, err := utils.HashToken(creatorToken)
	if err != nil {
		return nil, fmt.Errorf("hash creator token: %w", err)
	}

	pool := &models.Pool{Name: name, CreatorTokenHash: creatorHash}

	// Collisions on the 32-bit code are vanishingly rare; retry a few times
	// on the unique index before giving up.
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		pool.Code, err = utils.GeneratePoolCode()
		if err != nil {
			return nil, err
		}
		err = s.poolRepo.Create(ctx, pool)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrPoolCodeConflict) {
			return nil, err
		}
	}
	if err != nil {
		return nil, ErrPoolCodeGeneration
	}

	memberToken, err := s.addMember(ctx, pool.ID, creatorName, input.BracketData)
	if err != nil {
		return nil, err
	}

	return &CreatePoolResult{
		Code:         pool.Code,
		Name:         pool.Name,
		CreatorToken: creatorToken,
		MemberToken:  memberToken,
	}, nil
}

func (s *poolService) Get(ctx context.Context, code string, limit int) (*models.Pool, error) {
	pool, err := s.getPool(ctx, code)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = defaultMemberLimit
	}
	members, err := s.poolRepo.ListMembers(ctx, pool.ID, limit)
	if err != nil {
		return nil, err
	}
	pool.Members = members
	return pool, nil
}

func (s *poolService) Join(ctx context.Context, code string, input JoinPoolInput) (*JoinPoolResult, error) {
	pool, err := s.getPool(ctx, code)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if err := validateMemberInput(displayName, input.BracketData); err != nil {
		return nil, err
	}

	memberToken, err := s.addMember(ctx, pool.ID, displayName, input.BracketData)
	if err != nil {
		return nil, err
	}

	s.broadcast(pool.Code, brackets.MessageMemberJoined, map[string]string{"display_name": displayName})

	return &JoinPoolResult{
		MemberToken: memberToken,
		PoolName:    pool.Name,
		PoolCode:    pool.Code,
	}, nil
}

func (s *poolService) UpdateBracket(ctx context.Context, code, displayName, memberToken, bracketData string) error {
	if err := validateBracketData(bracketData); err != nil {
		return err
	}

	member, pool, err := s.authorizeMember(ctx, code, displayName, memberToken)
	if err != nil {
		return err
	}

	if err := s.poolRepo.UpdateMemberBracket(ctx, member.ID, bracketData); err != nil {
		return mapPoolRepoError(err)
	}

	s.broadcast(pool.Code, brackets.MessagePoolUpdated, map[string]string{
		"display_name": member.DisplayName,
		"bracket_data": bracketData,
	})
	return nil
}

func (s *poolService) Leave(ctx context.Context, code, displayName, memberToken string) error {
	member, pool, err := s.authorizeMember(ctx, code, displayName, memberToken)
	if err != nil {
		return err
	}

	if err := s.poolRepo.DeleteMember(ctx, member.ID); err != nil {
		return mapPoolRepoError(err)
	}

	s.broadcast(pool.Code, brackets.MessageMemberLeft, map[string]string{"display_name": member.DisplayName})
	return nil
}

func (s *poolService) Delete(ctx context.Context, code, creatorToken string) error {
	pool, err := s.getPool(ctx, code)
	if err != nil {
		return err
	}
	if !utils.CheckTokenHash(creatorToken, pool.CreatorTokenHash) {
		return ErrInvalidCreatorToken
	}
	return mapPoolRepoError(s.poolRepo.Delete(ctx, pool.ID))
}

func (s *poolService) getPool(ctx context.Context, code string) (*models.Pool, error) {
	pool, err := s.poolRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, mapPoolRepoError(err)
	}
	return pool, nil
}

func (s *poolService) addMember(ctx context.Context, poolID int, displayName, bracketData string) (string, error) {
	memberToken, err := utils.GenerateToken()
	if err != nil {
		return "", err
	}
	memberHash, err := utils.HashToken(memberToken)
	if err != nil {
		return "", fmt.Errorf("hash member token: %w", err)
	}

	member := &models.PoolMember{
		PoolID:      poolID,
		DisplayName: displayName,
		BracketData: bracketData,
		TokenHash:   memberHash,
	}
	if err := s.poolRepo.AddMember(ctx, member); err != nil {
		return "", mapPoolRepoError(err)
	}
	return memberToken, nil
}

func (s *poolService) authorizeMember(ctx context.Context, code, displayName, memberToken string) (*models.PoolMember, *models.Pool, error) {
	pool, err := s.getPool(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	member, err := s.poolRepo.GetMember(ctx, pool.ID, strings.TrimSpace(displayName))
	if err != nil {
		return nil, nil, mapPoolRepoError(err)
	}
	if !utils.CheckTokenHash(memberToken, member.TokenHash) {
		return nil, nil, ErrInvalidMemberToken
	}
	return member, pool, nil
}

func (s *poolService) broadcast(code, messageType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(PoolRoomID(code), brackets.WebSocketMessage{
		Type:    messageType,
		Payload: payload,
		RoomID:  PoolRoomID(code),
	})
}

// PoolRoomID names the websocket room for a pool code.
func PoolRoomID(code string) string {
	return "pool_" + code
}

func validateMemberInput(displayName, bracketData string) error {
	if displayName == "" {
		return ErrDisplayNameRequired
	}
	if len(displayName) > maxDisplayNameLength {
		return fmt.Errorf("%w: display name exceeds %d characters", ErrValidationFailed, maxDisplayNameLength)
	}
	return validateBracketData(bracketData)
}

// validateBracketData rejects payloads the rest of the system could not
// decode; members only ever store tokens the codec can restore.
func validateBracketData(bracketData string) error {
	if bracketData == "" {
		return ErrBracketDataRequired
	}
	if len(bracketData) > maxBracketDataLength {
		return ErrBracketDataTooLong
	}
	if _, err := codec.Decode(bracketData); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPredictionToken, err)
	}
	return nil
}

func mapPoolRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPoolNotFound):
		return ErrPoolNotFound
	case errors.Is(err, repositories.ErrMemberNotFound):
		return ErrMemberNotFound
	case errors.Is(err, repositories.ErrMemberNameConflict):
		return ErrMemberNameConflict
	default:
		return err
	}
}
