package mailer

import (
	"microblog/pkg/logger"

	"go.uber.org/zap"
)

// Mailer 邮件投递协作方
// 邮件传输本身不在本服务范围内，核心只依赖该接口
type Mailer interface {
	SendConfirmation(email, username, token string) error
}

// LogMailer 开发环境实现：把确认令牌写入日志，不做真实投递
type LogMailer struct{}

// NewLogMailer 创建LogMailer
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// SendConfirmation 记录确认令牌投递
func (m *LogMailer) SendConfirmation(email, username, token string) error {
	logger.Info("发送账号确认邮件",
		zap.String("email", email),
		zap.String("username", username),
		zap.String("confirm_token", token),
	)
	return nil
}
