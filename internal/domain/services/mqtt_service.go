package services

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/infrastructure/config"
	Logger "smartlight-http-service/pkg/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// InterfaceMQTTService 定义MQTT推送服务接口。
// 设备可以订阅指令主题以替代HTTP轮询，未订阅的设备不受影响。
type InterfaceMQTTService interface {
	Connect() error
	Disconnect()
	IsConnected() bool
	PublishCommand(deviceID string, command *models.DeviceCommand) error
	PublishDeviceStatus(deviceID string, status models.DeviceStatus) error
}

// MQTTService 管理到MQTT服务器的连接与发布
type MQTTService struct {
	Config *config.Config
	Client mqtt.Client

	connected      bool
	connectedMutex sync.RWMutex
}

// commandMessage 指令主题的消息载荷
type commandMessage struct {
	MessageID string `json:"message_id"`
	DeviceID  string `json:"device_id"`
	Command   string `json:"command"`
	Duration  int    `json:"duration"`
	Timestamp int64  `json:"timestamp"`
}

// statusMessage 状态主题的消息载荷
type statusMessage struct {
	MessageID string `json:"message_id"`
	DeviceID  string `json:"device_id"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// NewMQTTService 创建一个新的MQTT推送服务
func NewMQTTService(cfg *config.Config) InterfaceMQTTService {
	service := &MQTTService{
		Config: cfg,
	}

	// 未配置Broker时保持空客户端，所有发布直接跳过
	if cfg.MQTTBrokerURL != "" {
		service.setupMQTTClient()
	}

	return service
}

// setupMQTTClient 设置MQTT客户端
func (s *MQTTService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("%s-%s-%d", s.Config.MQTTClientID, uuid.New().String()[:8], time.Now().UnixNano()))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	// 添加用户名和密码
	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	// 添加TLS配置，支持SSL连接
	if strings.HasPrefix(s.Config.MQTTBrokerURL, "ssl://") || strings.HasPrefix(s.Config.MQTTBrokerURL, "tls://") || s.Config.MQTTSSLEnabled {
		Logger.Info("[MQTT] 使用TLS连接")
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
		}
		// 配置了CA证书时启用严格校验
		if s.Config.MQTTCACertPath != "" {
			if pem, err := os.ReadFile(s.Config.MQTTCACertPath); err == nil {
				pool := x509.NewCertPool()
				if pool.AppendCertsFromPEM(pem) {
					tlsConfig.RootCAs = pool
					tlsConfig.InsecureSkipVerify = false
				}
			} else {
				Logger.Warning("[MQTT] 无法读取CA证书 %s: %v", s.Config.MQTTCACertPath, err)
			}
		}
		opts.SetTLSConfig(tlsConfig)
	}

	// 设置连接丢失回调
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		Logger.Warning("[MQTT] 连接丢失: %v", err)
		s.connectedMutex.Lock()
		s.connected = false
		s.connectedMutex.Unlock()
	})

	// 设置连接建立回调
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		Logger.Info("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.connected = true
		s.connectedMutex.Unlock()
	})

	// 设置重连回调
	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		Logger.Info("[MQTT] 正在尝试重连...")
	})

	// 创建客户端
	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器
func (s *MQTTService) Connect() error {
	if s.Client == nil {
		// 未启用MQTT，不算错误
		return nil
	}

	token := s.Client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return errors.New("MQTT连接超时")
	}
	return token.Error()
}

// Disconnect 断开MQTT连接
func (s *MQTTService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// IsConnected 返回当前连接状态
func (s *MQTTService) IsConnected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.connected
}

// PublishCommand 向设备的指令主题推送最新指令
func (s *MQTTService) PublishCommand(deviceID string, command *models.DeviceCommand) error {
	msg := commandMessage{
		MessageID: uuid.New().String(),
		DeviceID:  deviceID,
		Command:   command.Command,
		Duration:  command.Duration,
		Timestamp: time.Now().Unix(),
	}
	topic := fmt.Sprintf("smartlight/%s/command", deviceID)
	return s.publish(topic, msg)
}

// PublishDeviceStatus 向设备的状态主题推送状态变更
func (s *MQTTService) PublishDeviceStatus(deviceID string, status models.DeviceStatus) error {
	msg := statusMessage{
		MessageID: uuid.New().String(),
		DeviceID:  deviceID,
		Status:    string(status),
		Timestamp: time.Now().Unix(),
	}
	topic := fmt.Sprintf("smartlight/%s/status", deviceID)
	return s.publish(topic, msg)
}

// publish 以QoS 1发布JSON消息
func (s *MQTTService) publish(topic string, payload interface{}) error {
	if s.Client == nil || !s.Client.IsConnected() {
		// MQTT是可选通道，离线时静默跳过
		return nil
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := s.Client.Publish(topic, 1, false, jsonData)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("发布到 %s 超时", topic)
	}
	return token.Error()
}
