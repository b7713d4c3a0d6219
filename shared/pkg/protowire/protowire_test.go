package protowire

import (
	"reflect"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	cases := []int64{1, 127, 128, 300, 1 << 20, 1 << 40}
	for _, v := range cases {
		e := NewEncoder()
		e.EncodeVarint(1, v)
		d := NewDecoder(e.Bytes())
		fieldNum, wireType, err := d.ReadTag()
		if err != nil || fieldNum != 1 || wireType != WireVarint {
			t.Fatalf("tag inválido para %d: field=%d wire=%d err=%v", v, fieldNum, wireType, err)
		}
		got, err := d.ReadVarint()
		if err != nil || got != v {
			t.Errorf("varint %d: got %d err=%v", v, got, err)
		}
	}
}

func TestZeroIsOmitted(t *testing.T) {
	e := NewEncoder()
	e.EncodeVarint(1, 0)
	e.EncodeString(2, "")
	e.EncodeBool(3, false)
	if len(e.Bytes()) != 0 {
		t.Errorf("valores default de proto3 não devem ser serializados, buffer tem %d bytes", len(e.Bytes()))
	}
}

func TestStringAndBytes(t *testing.T) {
	e := NewEncoder()
	e.EncodeString(1, "coral")
	e.EncodeBytes(2, []byte{0xDE, 0xAD})

	d := NewDecoder(e.Bytes())
	d.ReadTag()
	s, err := d.ReadString()
	if err != nil || s != "coral" {
		t.Fatalf("string: got %q err=%v", s, err)
	}
	d.ReadTag()
	b, err := d.ReadBytes()
	if err != nil || !reflect.DeepEqual(b, []byte{0xDE, 0xAD}) {
		t.Fatalf("bytes: got %v err=%v", b, err)
	}
	if !d.Done() {
		t.Error("decoder deveria ter consumido tudo")
	}
}

func TestPackedFixed32RoundTrip(t *testing.T) {
	values := []float32{0, 1.5, -3.25, 1e-6, 1e6}
	e := NewEncoder()
	e.EncodePackedFixed32(1, values)

	d := NewDecoder(e.Bytes())
	d.ReadTag()
	got, err := d.ReadPackedFixed32()
	if err != nil {
		t.Fatalf("ReadPackedFixed32 falhou: %v", err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Errorf("packed fixed32 difere: %v vs %v", got, values)
	}
}

func TestPackedUvarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 2, 127, 128, 65536, 1 << 30}
	e := NewEncoder()
	e.EncodePackedUvarint(1, values)

	d := NewDecoder(e.Bytes())
	d.ReadTag()
	got, err := d.ReadPackedUvarint()
	if err != nil {
		t.Fatalf("ReadPackedUvarint falhou: %v", err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Errorf("packed uvarint difere: %v vs %v", got, values)
	}
}

func TestSkipField(t *testing.T) {
	e := NewEncoder()
	e.EncodeVarint(1, 7)
	e.EncodeString(2, "pular")
	e.EncodeFixed32(3, 2.5)
	e.EncodeVarint(4, 99)

	d := NewDecoder(e.Bytes())
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			t.Fatalf("ReadTag falhou: %v", err)
		}
		if fieldNum == 4 {
			v, _ := d.ReadVarint()
			if v != 99 {
				t.Errorf("campo 4 = %d, esperado 99", v)
			}
			continue
		}
		if err := d.SkipField(wireType); err != nil {
			t.Fatalf("SkipField(%d) falhou: %v", wireType, err)
		}
	}
}

func TestTruncatedInput(t *testing.T) {
	e := NewEncoder()
	e.EncodeString(1, "mensagem completa")
	data := e.Bytes()

	d := NewDecoder(data[:len(data)-4])
	d.ReadTag()
	if _, err := d.ReadString(); err == nil {
		t.Error("esperado erro para buffer truncado")
	}
}

func TestPackedFixed32BadLength(t *testing.T) {
	// 6 bytes de payload não formam floats completos
	e := NewEncoder()
	e.EncodeBytes(1, []byte{1, 2, 3, 4, 5, 6})

	d := NewDecoder(e.Bytes())
	d.ReadTag()
	if _, err := d.ReadPackedFixed32(); err == nil {
		t.Error("esperado erro para tamanho não múltiplo de 4")
	}
}
