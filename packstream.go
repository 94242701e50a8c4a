package bolt

// PackStream marker bytes. High nibble classifies, low nibble carries a
// short length or sign for the tiny forms.
const (
	markerNull    byte = 0xC0
	markerFalse   byte = 0xC2
	markerTrue    byte = 0xC3
	markerFloat64 byte = 0xC1
	markerInt8    byte = 0xC8
	markerInt16   byte = 0xC9
	markerInt32   byte = 0xCA
	markerInt64   byte = 0xCB

	markerBytes8  byte = 0xCC
	markerBytes16 byte = 0xCD
	markerBytes32 byte = 0xCE

	markerString8  byte = 0xD0
	markerString16 byte = 0xD1
	markerString32 byte = 0xD2

	markerList8  byte = 0xD4
	markerList16 byte = 0xD5
	markerList32 byte = 0xD6

	markerMap8  byte = 0xD8
	markerMap16 byte = 0xD9
	markerMap32 byte = 0xDA

	markerStructure8  byte = 0xDC
	markerStructure16 byte = 0xDD

	tinyStringBase    byte = 0x80
	tinyStringMax     byte = 0x8F
	tinyListBase      byte = 0x90
	tinyListMax       byte = 0x9F
	tinyMapBase       byte = 0xA0
	tinyMapMax        byte = 0xAF
	tinyStructureBase byte = 0xB0
	tinyStructureMax  byte = 0xBF

	tinyIntMax byte = 0x7F // 0x00..0x7F: small positive int
	tinyIntMin byte = 0xF0 // 0xF0..0xFF: small negative int
)

// Load serializes v onto w, dispatching on v.kind. It is the sole
// translation from Value to wire bytes.
func Load(w *Buffer, v *Value) error {
	switch v.kind {
	case NullKind:
		return w.WriteByte(markerNull)
	case Bit:
		if v.Boolean() {
			return w.WriteByte(markerTrue)
		}
		return w.WriteByte(markerFalse)
	case Int8, Int16, Int32, Int64:
		return loadInt(w, v.AsInt64())
	case Float64:
		if err := w.WriteByte(markerFloat64); err != nil {
			return err
		}
		_, err := w.Write(beUint64(float64bits(v.Float64Value())))
		return err
	case ByteArrayKind:
		return loadBytesHeader(w, v.size, func(i int32) byte { return v.ByteArrayAt(i) })
	case String8:
		return loadString(w, v.String8Value())
	case String8Array:
		if err := loadListHeader(w, v.size); err != nil {
			return err
		}
		for i := int32(0); i < v.size; i++ {
			if err := loadString(w, v.String8ArrayAt(i)); err != nil {
				return err
			}
		}
		return nil
	case List:
		if err := loadListHeader(w, v.size); err != nil {
			return err
		}
		for i := range v.children {
			if err := Load(w, &v.children[i]); err != nil {
				return err
			}
		}
		return nil
	case Dictionary8:
		if err := loadMapHeader(w, v.size); err != nil {
			return err
		}
		for i := range v.children {
			if err := loadString(w, v.keys[i]); err != nil {
				return err
			}
			if err := Load(w, &v.children[i]); err != nil {
				return err
			}
		}
		return nil
	case Structure, Request, Summary:
		if err := loadStructureHeader(w, v.size, v.subtype); err != nil {
			return err
		}
		for i := range v.children {
			if err := Load(w, &v.children[i]); err != nil {
				return err
			}
		}
		return nil
	case StructureArray:
		if err := loadListHeader(w, v.size); err != nil {
			return err
		}
		for i := range v.children {
			if err := Load(w, &v.children[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrNotPackable
	}
}

// loadInt emits the shortest representation of i that round-trips: tiny,
// INT_8, INT_16, INT_32, or INT_64 big-endian.
func loadInt(w *Buffer, i int64) error {
	switch {
	case i >= -16 && i <= int64(tinyIntMax):
		return w.WriteByte(byte(int8(i)))
	case i >= -128 && i <= 127:
		if err := w.WriteByte(markerInt8); err != nil {
			return err
		}
		return w.WriteByte(byte(int8(i)))
	case i >= -32768 && i <= 32767:
		if err := w.WriteByte(markerInt16); err != nil {
			return err
		}
		_, err := w.Write(beUint16(uint16(int16(i))))
		return err
	case i >= -2147483648 && i <= 2147483647:
		if err := w.WriteByte(markerInt32); err != nil {
			return err
		}
		_, err := w.Write(beUint32(uint32(int32(i))))
		return err
	default:
		if err := w.WriteByte(markerInt64); err != nil {
			return err
		}
		_, err := w.Write(beUint64(uint64(i)))
		return err
	}
}

func loadString(w *Buffer, s string) error {
	size := int32(len(s))
	if size <= 15 {
		if err := w.WriteByte(tinyStringBase | byte(size)); err != nil {
			return err
		}
	} else if size <= 0xFF {
		if err := w.WriteByte(markerString8); err != nil {
			return err
		}
		if err := w.WriteByte(byte(size)); err != nil {
			return err
		}
	} else if size <= 0xFFFF {
		if err := w.WriteByte(markerString16); err != nil {
			return err
		}
		if _, err := w.Write(beUint16(uint16(size))); err != nil {
			return err
		}
	} else {
		if err := w.WriteByte(markerString32); err != nil {
			return err
		}
		if _, err := w.Write(beUint32(uint32(size))); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte(s))
	return err
}

func loadBytesHeader(w *Buffer, size int32, at func(int32) byte) error {
	switch {
	case size <= 0xFF:
		if err := w.WriteByte(markerBytes8); err != nil {
			return err
		}
		if err := w.WriteByte(byte(size)); err != nil {
			return err
		}
	case size <= 0xFFFF:
		if err := w.WriteByte(markerBytes16); err != nil {
			return err
		}
		if _, err := w.Write(beUint16(uint16(size))); err != nil {
			return err
		}
	default:
		if err := w.WriteByte(markerBytes32); err != nil {
			return err
		}
		if _, err := w.Write(beUint32(uint32(size))); err != nil {
			return err
		}
	}
	for i := int32(0); i < size; i++ {
		if err := w.WriteByte(at(i)); err != nil {
			return err
		}
	}
	return nil
}

func loadListHeader(w *Buffer, size int32) error {
	switch {
	case size <= 15:
		return w.WriteByte(tinyListBase | byte(size))
	case size <= 0xFF:
		if err := w.WriteByte(markerList8); err != nil {
			return err
		}
		return w.WriteByte(byte(size))
	case size <= 0xFFFF:
		if err := w.WriteByte(markerList16); err != nil {
			return err
		}
		_, err := w.Write(beUint16(uint16(size)))
		return err
	default:
		if err := w.WriteByte(markerList32); err != nil {
			return err
		}
		_, err := w.Write(beUint32(uint32(size)))
		return err
	}
}

func loadMapHeader(w *Buffer, size int32) error {
	switch {
	case size <= 15:
		return w.WriteByte(tinyMapBase | byte(size))
	case size <= 0xFF:
		if err := w.WriteByte(markerMap8); err != nil {
			return err
		}
		return w.WriteByte(byte(size))
	case size <= 0xFFFF:
		if err := w.WriteByte(markerMap16); err != nil {
			return err
		}
		_, err := w.Write(beUint16(uint16(size)))
		return err
	default:
		if err := w.WriteByte(markerMap32); err != nil {
			return err
		}
		_, err := w.Write(beUint32(uint32(size)))
		return err
	}
}

func loadStructureHeader(w *Buffer, size int32, subtype byte) error {
	switch {
	case size <= 15:
		if err := w.WriteByte(tinyStructureBase | byte(size)); err != nil {
			return err
		}
	case size <= 0xFF:
		if err := w.WriteByte(markerStructure8); err != nil {
			return err
		}
		if err := w.WriteByte(byte(size)); err != nil {
			return err
		}
	default:
		if err := w.WriteByte(markerStructure16); err != nil {
			return err
		}
		if _, err := w.Write(beUint16(uint16(size))); err != nil {
			return err
		}
	}
	return w.WriteByte(subtype)
}

// Unload deserializes one value from r into v, recursively materializing
// nested children and allocating container slots.
func Unload(r *Buffer, v *Value) error {
	marker, err := r.ReadByte()
	if err != nil {
		return err
	}
	switch {
	case marker == markerNull:
		v.ToNull()
		return nil
	case marker == markerFalse:
		v.ToBoolean(false)
		return nil
	case marker == markerTrue:
		v.ToBoolean(true)
		return nil
	case marker == markerFloat64:
		if r.Len() < 8 {
			return ErrTruncatedChunk
		}
		v.ToFloat64(float64frombits(beGetUint64(r.Next(8))))
		return nil
	case marker <= tinyIntMax:
		v.ToInt64(int64(marker))
		return nil
	case marker >= tinyIntMin:
		v.ToInt64(int64(int8(marker)))
		return nil
	case marker == markerInt8:
		if r.Len() < 1 {
			return ErrTruncatedChunk
		}
		v.ToInt64(int64(int8(r.Next(1)[0])))
		return nil
	case marker == markerInt16:
		if r.Len() < 2 {
			return ErrTruncatedChunk
		}
		v.ToInt64(int64(int16(beGetUint16(r.Next(2)))))
		return nil
	case marker == markerInt32:
		if r.Len() < 4 {
			return ErrTruncatedChunk
		}
		v.ToInt64(int64(int32(beGetUint32(r.Next(4)))))
		return nil
	case marker == markerInt64:
		if r.Len() < 8 {
			return ErrTruncatedChunk
		}
		v.ToInt64(int64(beGetUint64(r.Next(8))))
		return nil
	case marker >= tinyStringBase && marker <= tinyStringMax:
		return unloadString(r, v, int32(marker&0x0F))
	case marker == markerString8:
		n, err := readLen8(r)
		if err != nil {
			return err
		}
		return unloadString(r, v, n)
	case marker == markerString16:
		n, err := readLen16(r)
		if err != nil {
			return err
		}
		return unloadString(r, v, n)
	case marker == markerString32:
		n, err := readLen32(r)
		if err != nil {
			return err
		}
		return unloadString(r, v, n)
	case marker == markerBytes8:
		n, err := readLen8(r)
		if err != nil {
			return err
		}
		return unloadBytes(r, v, n)
	case marker == markerBytes16:
		n, err := readLen16(r)
		if err != nil {
			return err
		}
		return unloadBytes(r, v, n)
	case marker == markerBytes32:
		n, err := readLen32(r)
		if err != nil {
			return err
		}
		return unloadBytes(r, v, n)
	case marker >= tinyListBase && marker <= tinyListMax:
		return unloadList(r, v, int32(marker&0x0F))
	case marker == markerList8:
		n, err := readLen8(r)
		if err != nil {
			return err
		}
		return unloadList(r, v, n)
	case marker == markerList16:
		n, err := readLen16(r)
		if err != nil {
			return err
		}
		return unloadList(r, v, n)
	case marker == markerList32:
		n, err := readLen32(r)
		if err != nil {
			return err
		}
		return unloadList(r, v, n)
	case marker >= tinyMapBase && marker <= tinyMapMax:
		return unloadMap(r, v, int32(marker&0x0F))
	case marker == markerMap8:
		n, err := readLen8(r)
		if err != nil {
			return err
		}
		return unloadMap(r, v, n)
	case marker == markerMap16:
		n, err := readLen16(r)
		if err != nil {
			return err
		}
		return unloadMap(r, v, n)
	case marker == markerMap32:
		n, err := readLen32(r)
		if err != nil {
			return err
		}
		return unloadMap(r, v, n)
	case marker >= tinyStructureBase && marker <= tinyStructureMax:
		return unloadStructure(r, v, int32(marker&0x0F))
	case marker == markerStructure8:
		n, err := readLen8(r)
		if err != nil {
			return err
		}
		return unloadStructure(r, v, n)
	case marker == markerStructure16:
		n, err := readLen16(r)
		if err != nil {
			return err
		}
		return unloadStructure(r, v, n)
	default:
		return NewError(ProtocolViolation, errInvalidMarker{marker})
	}
}

type errInvalidMarker struct{ marker byte }

func (e errInvalidMarker) Error() string {
	return "packstream: invalid marker byte"
}

func readLen8(r *Buffer) (int32, error) {
	if r.Len() < 1 {
		return 0, ErrTruncatedChunk
	}
	return int32(r.Next(1)[0]), nil
}

func readLen16(r *Buffer) (int32, error) {
	if r.Len() < 2 {
		return 0, ErrTruncatedChunk
	}
	return int32(beGetUint16(r.Next(2))), nil
}

func readLen32(r *Buffer) (int32, error) {
	if r.Len() < 4 {
		return 0, ErrTruncatedChunk
	}
	return int32(beGetUint32(r.Next(4))), nil
}

func unloadString(r *Buffer, v *Value, size int32) error {
	if r.Len() < int(size) {
		return ErrTruncatedChunk
	}
	v.ToString8(string(r.Next(int(size))))
	return nil
}

func unloadBytes(r *Buffer, v *Value, size int32) error {
	if r.Len() < int(size) {
		return ErrTruncatedChunk
	}
	v.ToByteArray(r.Next(int(size)))
	return nil
}

func unloadList(r *Buffer, v *Value, size int32) error {
	v.ToList(size)
	for i := int32(0); i < size; i++ {
		if err := Unload(r, v.ListAt(i)); err != nil {
			return err
		}
	}
	return nil
}

func unloadMap(r *Buffer, v *Value, size int32) error {
	v.ToDictionary8(size)
	var key Value
	defer key.destroy()
	for i := int32(0); i < size; i++ {
		if err := Unload(r, &key); err != nil {
			return err
		}
		if key.Kind() != String8 {
			return NewError(ProtocolViolation, errNonStringKey{})
		}
		v.DictSetKey(i, key.String8Value())
		if err := Unload(r, v.DictValueAt(i)); err != nil {
			return err
		}
	}
	return nil
}

type errNonStringKey struct{}

func (errNonStringKey) Error() string { return "packstream: map key is not a string" }

func unloadStructure(r *Buffer, v *Value, fieldCount int32) error {
	if r.Len() < 1 {
		return ErrTruncatedChunk
	}
	subtype := r.Next(1)[0]
	v.ToStructure(subtype, fieldCount)
	for i := int32(0); i < fieldCount; i++ {
		if err := Unload(r, v.StructFieldAt(i)); err != nil {
			return err
		}
	}
	return nil
}
