// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"
	stderrors "errors"
	"time"

	"AeroBot/app/common/consts/errno"
	"AeroBot/app/common/util"
	"AeroBot/app/dal/chatbot"
	"AeroBot/app/services/chatbot/internal/store"
	"AeroBot/app/services/chatbot/internal/svc"
	"AeroBot/app/services/chatbot/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type GetOrderLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetOrderLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetOrderLogic {
	return &GetOrderLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetOrderLogic) GetOrder(req *types.GetOrderRequest) (resp *types.OrderInfo, err error) {
	if req.Id <= 0 {
		return nil, errors.New(int(errno.InvalidParam), "invalid order id")
	}

	o, err := l.svcCtx.Orders.FindOrder(l.ctx, req.Id)
	if stderrors.Is(err, chatbot.ErrNotFound) {
		return nil, errors.New(int(errno.OrderNotFound), "order not found")
	}
	if err != nil {
		l.Logger.Errorw("find order failed", logx.Field("order_id", req.Id), logx.Field("err", err.Error()))
		return nil, errors.New(int(errno.InternalError), "query order failed")
	}

	lines, err := store.Items(o)
	if err != nil {
		l.Logger.Errorw("decode order items failed", logx.Field("order_id", req.Id), logx.Field("err", err.Error()))
		return nil, errors.New(int(errno.InternalError), "corrupt order")
	}
	items := make([]types.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, types.OrderItem{
			Sku:          line.SKU,
			Name:         line.Name,
			Qty:          line.Qty,
			UnitPriceClp: line.UnitPrice,
		})
	}

	return &types.OrderInfo{
		Id:        o.Id,
		Channel:   o.Channel,
		UserId:    o.UserId,
		Status:    o.Status,
		TotalClp:  o.TotalClp,
		Total:     util.FormatCLP(o.TotalClp),
		Items:     items,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}, nil
}
