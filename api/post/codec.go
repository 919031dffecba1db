package post

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName - content-subtype, под которым зарегистрирован кодек
const CodecName = "json"

func init() {
	encoding.RegisterCodec(codec{})
}

// codec сериализует сообщения сервиса в JSON
type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (codec) Name() string {
	return CodecName
}
