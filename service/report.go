package service

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/Tougashi/Stunting-sub001/config"
	"github.com/Tougashi/Stunting-sub001/model"
	"github.com/jordan-wright/email"
	"github.com/yuin/goldmark"
)

// ReportService mails a daily activity summary to the operations address.
// It is scheduled from main via cron.
type ReportService struct {
	Consultations *model.ConsultationRepo
	Scans         *model.ScanRepo
	SMTP          config.SMTPConfig
}

func (s *ReportService) SendDailyReport(ctx context.Context) error {
	logger.Infof("[%s] Start scheduled task SendDailyReport", "scheduled task")
	if !s.SMTP.Enabled() {
		logger.Infof("[%s] SMTP not configured, skipping daily report", "scheduled task")
		return nil
	}

	since := time.Now().Add(-24 * time.Hour)

	messageCount, err := s.Consultations.CountSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to count consultations: %w", err)
	}
	userCount, err := s.Consultations.CountUsersSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to count consulting users: %w", err)
	}
	scanCount, err := s.Scans.CountSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to count scans: %w", err)
	}

	md := fmt.Sprintf(`# Laporan harian %s

- Pesan konsultasi 24 jam terakhir: **%d**
- Pengguna yang berkonsultasi: **%d**
- Unggahan scan: **%d**
`, time.Now().Format("2006-01-02"), messageCount, userCount, scanCount)

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	e := email.NewEmail()
	e.From = s.SMTP.From
	e.To = []string{s.SMTP.ReportTo}
	e.Subject = "Laporan harian konsultasi stunting"
	e.HTML = body.Bytes()

	addr := fmt.Sprintf("%s:%d", s.SMTP.Host, s.SMTP.Port)
	var auth smtp.Auth
	if s.SMTP.User != "" {
		auth = smtp.PlainAuth("", s.SMTP.User, s.SMTP.Password, s.SMTP.Host)
	}
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}

	logger.Infof("[%s] Finished scheduled task SendDailyReport", "scheduled task")
	return nil
}
