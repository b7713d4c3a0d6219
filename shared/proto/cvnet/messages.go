// Package cvnet define as mensagens trocadas entre cliente e servidor:
// pedidos de geração, malhas resultantes e status do servidor, todas
// serializadas com o wire format do pacote protowire.
package cvnet

import (
	"fmt"

	"CoralVision/shared/pkg/protowire"
)

// Tipos de mensagem do envelope
const (
	Envelope_UNKNOWN        = 0
	Envelope_GENERATE       = 1
	Envelope_MESH_RESULT    = 2
	Envelope_SERVER_STATUS  = 3
	Envelope_GENERATE_ERROR = 4
)

// Envelope encapsula qualquer mensagem com seu tipo.
type Envelope struct {
	Type    int32
	Payload []byte
}

func (m *Envelope) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.Type))
	e.EncodeBytes(2, m.Payload)
	return e.Bytes()
}

func (m *Envelope) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.Type = int32(v)
		case 2:
			b, err := d.ReadBytes()
			if err != nil {
				return err
			}
			m.Payload = b
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateRequest pede ao servidor a construção de um coral.
// Os parâmetros viajam como JSON (o mesmo formato do arquivo de config).
type GenerateRequest struct {
	RequestID  int32
	ParamsJSON []byte
	Persist    bool // grava a malha no banco do servidor
}

func (m *GenerateRequest) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.RequestID))
	e.EncodeBytes(2, m.ParamsJSON)
	e.EncodeBool(3, m.Persist)
	return e.Bytes()
}

func (m *GenerateRequest) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.RequestID = int32(v)
		case 2:
			b, err := d.ReadBytes()
			if err != nil {
				return err
			}
			m.ParamsJSON = b
		case 3:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.Persist = v
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// MeshResult carrega a malha indexada construída pelo servidor.
// Positions e Normals vêm intercalados como x,y,z por vértice.
type MeshResult struct {
	RequestID   int32
	Algorithm   string
	Seed        int32
	Positions   []float32
	Normals     []float32
	Indices     []uint32
	BuildMillis int64
}

func (m *MeshResult) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.RequestID))
	e.EncodeString(2, m.Algorithm)
	e.EncodeVarint(3, int64(m.Seed))
	e.EncodePackedFixed32(4, m.Positions)
	e.EncodePackedFixed32(5, m.Normals)
	e.EncodePackedUvarint(6, m.Indices)
	e.EncodeVarint(7, m.BuildMillis)
	return e.Bytes()
}

func (m *MeshResult) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.RequestID = int32(v)
		case 2:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.Algorithm = s
		case 3:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.Seed = int32(v)
		case 4:
			vs, err := d.ReadPackedFixed32()
			if err != nil {
				return err
			}
			m.Positions = vs
		case 5:
			vs, err := d.ReadPackedFixed32()
			if err != nil {
				return err
			}
			m.Normals = vs
		case 6:
			vs, err := d.ReadPackedUvarint()
			if err != nil {
				return err
			}
			m.Indices = vs
		case 7:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.BuildMillis = v
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("cvnet: posições com %d floats, não múltiplo de 3", len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("cvnet: índices com %d valores, não múltiplo de 3", len(m.Indices))
	}
	return nil
}

// ServerStatus é uma notificação de estado/progresso do servidor.
type ServerStatus struct {
	Message     string
	Busy        bool
	MeshesSaved int64
}

func (m *ServerStatus) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.Message)
	e.EncodeBool(2, m.Busy)
	e.EncodeVarint(3, m.MeshesSaved)
	return e.Bytes()
}

func (m *ServerStatus) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.Message = s
		case 2:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.Busy = v
		case 3:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.MeshesSaved = v
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateError informa ao cliente que um pedido falhou.
type GenerateError struct {
	RequestID int32
	Reason    string
}

func (m *GenerateError) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.RequestID))
	e.EncodeString(2, m.Reason)
	return e.Bytes()
}

func (m *GenerateError) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.RequestID = int32(v)
		case 2:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.Reason = s
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}
