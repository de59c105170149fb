package ui

import (
	"errors"
	"net/http"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/middleware"
)

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	title := "出错了"
	message := "排盘时发生了意外错误，请稍后再试。"

	var validation *domain.ValidationError
	var cal *domain.CalendarError
	if errors.As(err, &validation) {
		status = http.StatusBadRequest
		title = "输入有误"
		message = validation.Error()
	} else if errors.As(err, &cal) {
		status = http.StatusUnprocessableEntity
		title = "历法计算失败"
		message = cal.Error()
	} else {
		h.Logger.Error("render chart page",
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err)
	}

	renderHTML(w, status, errorPage(title, message))
}
