package services

import (
	"fmt"

	"smartlight-http-service/internal/infrastructure/config"
	Logger "smartlight-http-service/pkg/logger"

	"gopkg.in/gomail.v2"
)

// InterfaceAlertService 定义告警发送服务接口
type InterfaceAlertService interface {
	Send(message string) error
}

// mailSender 抽象gomail的发送动作，便于测试时替换
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailAlertService 通过SMTP邮件发送告警
type EmailAlertService struct {
	Config *config.Config
	sender mailSender
}

// NewEmailAlertService 创建一个新的邮件告警服务
func NewEmailAlertService(cfg *config.Config) InterfaceAlertService {
	return &EmailAlertService{
		Config: cfg,
		sender: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// Send 发送告警邮件。返回错误由调用方决定是否忽略，
// 遥测入口将其视为非致命错误，仅记录日志。
func (s *EmailAlertService) Send(message string) error {
	if s.Config.SMTPHost == "" || len(s.Config.AlertRecipients) == 0 {
		return ErrAlertNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.Config.AlertFromEmail)
	m.SetHeader("To", s.Config.AlertRecipients...)
	m.SetHeader("Subject", "Smart Light Alert")
	m.SetBody("text/plain", message)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("发送告警邮件失败: %w", err)
	}

	Logger.Info("告警邮件已发送: %s", message)
	return nil
}
