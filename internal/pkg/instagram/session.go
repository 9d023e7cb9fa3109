package instagram

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Session 上游平台的会话凭据，由外部登录流程预先写入会话文件
type Session struct {
	Username  string `json:"username"`
	SessionID string `json:"sessionid"`
	CSRFToken string `json:"csrftoken"`
	UserAgent string `json:"user_agent,omitempty"`
}

// LoadSession 从会话文件加载凭据。文件不存在时返回 nil（匿名访问），不报错。
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read session file")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "parse session file")
	}
	if session.SessionID == "" {
		return nil, errors.New("session file has no sessionid")
	}

	return &session, nil
}
