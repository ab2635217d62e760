package inventory

import (
	"context"

	"github.com/gestaoloja/estoque-api/internal/application/dto"
	"github.com/gestaoloja/estoque-api/internal/domain/entity"
)

// RegisterFromRequest adapta o request HTTP ao caso de uso Register.
// A data é interpretada aqui: malformada devolve domain.DateParseError.
func (uc *RegisterMovementUseCase) RegisterFromRequest(
	ctx context.Context,
	branchID, userName string,
	in dto.RegisterMovementRequest,
) (*entity.StockMovement, error) {
	date, err := dto.ParseMovementDate(in.Date)
	if err != nil {
		return nil, err
	}
	return uc.Register(ctx, MovementInput{
		BranchID:      branchID,
		UserName:      userName,
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Date:          date,
		Notes:         in.Notes,
		ToBranchID:    in.ToBranchID,
		RefMovementID: in.RefMovementID,
	})
}
