// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"
	"time"

	"AeroBot/app/common/consts/errno"
	"AeroBot/app/services/chatbot/internal/svc"
	"AeroBot/app/services/chatbot/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type ListLeadsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListLeadsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListLeadsLogic {
	return &ListLeadsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListLeads returns the newest leads first.
func (l *ListLeadsLogic) ListLeads(req *types.ListLeadsRequest) (resp *types.ListLeadsResponse, err error) {
	if req.Limit < 0 {
		return nil, errors.New(int(errno.InvalidParam), "limit must not be negative")
	}
	rows, err := l.svcCtx.Orders.ListLeads(l.ctx, req.Limit)
	if err != nil {
		l.Logger.Errorw("list leads failed", logx.Field("err", err.Error()))
		return nil, errors.New(int(errno.InternalError), "query leads failed")
	}

	resp = &types.ListLeadsResponse{Leads: make([]types.LeadInfo, 0, len(rows))}
	for _, r := range rows {
		resp.Leads = append(resp.Leads, types.LeadInfo{
			Id:        r.Id,
			Channel:   r.Channel,
			UserId:    r.UserId,
			Name:      r.Name,
			Phone:     r.Phone,
			Email:     r.Email,
			City:      r.City,
			Notes:     r.Notes,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}
