package value

import (
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// INET/CIDR payloads are the net/netip canonical binary form of a
// netip.Prefix (4 or 16 address bytes, followed by a 1-byte prefix length);
// a bare address (no "/n" in the source text) is stored with a prefix length
// equal to the address's full bit width, matching PostgreSQL's inet/cidr
// semantics. MAC/MAC8 payloads are the raw 6 or 8 hardware-address bytes.
//
// net/netip and net.HardwareAddr are stdlib rather than an example-pack
// dependency: no third-party IP/MAC library appears anywhere in the
// retrieved corpus, and netip's allocation-free comparable value type is
// the standard modern replacement for the old net.IP (recorded in DESIGN.md).

func encodePrefix(p netip.Prefix) []byte {
	addr := p.Addr()
	b := addr.AsSlice()

	return append(b, byte(p.Bits()))
}

func decodePrefix(b []byte) (netip.Prefix, bool) {
	if len(b) == 5 {
		addr, ok := netip.AddrFromSlice(b[:4])
		if !ok {
			return netip.Prefix{}, false
		}

		return netip.PrefixFrom(addr, int(b[4])), true
	}

	if len(b) == 17 {
		addr, ok := netip.AddrFromSlice(b[:16])
		if !ok {
			return netip.Prefix{}, false
		}

		return netip.PrefixFrom(addr, int(b[16])), true
	}

	return netip.Prefix{}, false
}

// Inet builds an INET scalar.
func Inet(p netip.Prefix) Value {
	e, pl, _ := container.MakeExtended(container.ExtInet, encodePrefix(p))
	return Value{entry: e, payload: pl}
}

// Cidr builds a CIDR scalar.
func Cidr(p netip.Prefix) Value {
	e, pl, _ := container.MakeExtended(container.ExtCidr, encodePrefix(p))
	return Value{entry: e, payload: pl}
}

// InetFromString parses text (with or without a "/n" suffix) as an INET.
func InetFromString(text string) (Value, error) {
	p, err := parseInetText(text)
	if err != nil {
		return Value{}, &errs.ParseError{Err: err, Excerpt: text}
	}

	return Inet(p), nil
}

// CidrFromString parses text as a CIDR; the host bits must be zero.
func CidrFromString(text string) (Value, error) {
	p, err := parseInetText(text)
	if err != nil {
		return Value{}, &errs.ParseError{Err: err, Excerpt: text}
	}

	if p != p.Masked() {
		return Value{}, &errs.DomainError{Detail: "cidr host bits set", Err: errs.ErrMalformedNetwork}
	}

	return Cidr(p), nil
}

func parseInetText(text string) (netip.Prefix, error) {
	if strings.Contains(text, "/") {
		return netip.ParsePrefix(text)
	}

	addr, err := netip.ParseAddr(text)
	if err != nil {
		return netip.Prefix{}, err
	}

	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// AsInet returns v's prefix, if v is an INET or CIDR.
func (v Value) AsInet() (netip.Prefix, bool) {
	if s, ok := v.extScalarOf(container.ExtInet); ok {
		return decodePrefix(s)
	}

	if s, ok := v.extScalarOf(container.ExtCidr); ok {
		return decodePrefix(s)
	}

	return netip.Prefix{}, false
}

// Mac builds a MAC (6-byte EUI-48) scalar.
func Mac(hw net.HardwareAddr) Value {
	e, p, _ := container.MakeExtended(container.ExtMac, []byte(hw))
	return Value{entry: e, payload: p}
}

// Mac8 builds a MAC8 (8-byte EUI-64) scalar.
func Mac8(hw net.HardwareAddr) Value {
	e, p, _ := container.MakeExtended(container.ExtMac8, []byte(hw))
	return Value{entry: e, payload: p}
}

// MacFromString parses a colon- or hyphen-delimited hardware address.
func MacFromString(text string) (Value, error) {
	hw, err := net.ParseMAC(text)
	if err != nil {
		return Value{}, &errs.ParseError{Err: err, Excerpt: text}
	}

	if len(hw) == 8 {
		return Mac8(hw), nil
	}

	return Mac(hw), nil
}

// AsMac returns v's hardware address, if v is a MAC or MAC8.
func (v Value) AsMac() (net.HardwareAddr, bool) {
	if s, ok := v.extScalarOf(container.ExtMac); ok {
		return net.HardwareAddr(s), true
	}

	if s, ok := v.extScalarOf(container.ExtMac8); ok {
		return net.HardwareAddr(s), true
	}

	return nil, false
}

// addIntegerToInet implements "inet ± integer → inet" (spec §4.2): shifting
// the address by n hosts while preserving the prefix length.
func addIntegerToInet(inet, integer Value) (Value, error) {
	p, ok := inet.AsInet()
	if !ok {
		return Value{}, typeErr("+", inet, integer, errs.ErrTypeMismatch)
	}

	n, ok := integer.AsInt64()
	if !ok {
		return Value{}, typeErr("+", inet, integer, errs.ErrTypeMismatch)
	}

	addr := p.Addr()
	b := addr.AsSlice()

	acc := n
	for i := len(b) - 1; i >= 0 && acc != 0; i-- {
		sum := int64(b[i]) + acc
		b[i] = byte(sum & 0xFF)
		acc = sum >> 8
	}

	shifted, ok := netip.AddrFromSlice(b)
	if !ok {
		return Value{}, &errs.DomainError{Detail: "inet overflow", Err: errs.ErrMalformedNetwork}
	}

	result := netip.PrefixFrom(shifted, p.Bits())
	if inet.Kind() == KindCidr {
		return Cidr(result), nil
	}

	return Inet(result), nil
}

// Family reports 4 or 6, matching PostgreSQL's family().
func (v Value) Family() (int, bool) {
	p, ok := v.AsInet()
	if !ok {
		return 0, false
	}

	if p.Addr().Is4() {
		return 4, true
	}

	return 6, true
}

// Masklen returns the prefix length in bits.
func (v Value) Masklen() (int, bool) {
	p, ok := v.AsInet()
	if !ok {
		return 0, false
	}

	return p.Bits(), true
}

// Network returns the network address (host bits zeroed), as a CIDR.
func (v Value) Network() (Value, bool) {
	p, ok := v.AsInet()
	if !ok {
		return Value{}, false
	}

	return Cidr(p.Masked()), true
}

// Host returns the address without its prefix length, as text.
func (v Value) Host() (string, bool) {
	p, ok := v.AsInet()
	if !ok {
		return "", false
	}

	return p.Addr().String(), true
}

// Broadcast returns the highest address in v's network (IPv4 only).
func (v Value) Broadcast() (Value, bool) {
	p, ok := v.AsInet()
	if !ok || !p.Addr().Is4() {
		return Value{}, false
	}

	b := p.Addr().As4()
	ones := p.Bits()

	for i := ones; i < 32; i++ {
		byteIdx, bitIdx := i/8, 7-i%8
		b[byteIdx] |= 1 << bitIdx
	}

	addr := netip.AddrFrom4(b)

	return Inet(netip.PrefixFrom(addr, ones)), true
}

// SetMasklen returns v with its prefix length changed to n.
func (v Value) SetMasklen(n int) (Value, bool) {
	p, ok := v.AsInet()
	if !ok {
		return Value{}, false
	}

	result := netip.PrefixFrom(p.Addr(), n)
	if v.Kind() == KindCidr {
		return Cidr(result), true
	}

	return Inet(result), true
}

func (v Value) renderNetwork() (string, bool) {
	switch v.Kind() {
	case KindInet, KindCidr:
		p, ok := v.AsInet()
		if !ok {
			return "", false
		}

		if p.Bits() == p.Addr().BitLen() && v.Kind() == KindInet {
			return p.Addr().String(), true
		}

		return p.String(), true
	case KindMac, KindMac8:
		hw, ok := v.AsMac()
		if !ok {
			return "", false
		}

		return hw.String(), true
	default:
		return "", false
	}
}

func init() {
	container.RegisterExtComparator(container.ExtInet, compareNetworkPayload)
	container.RegisterExtComparator(container.ExtCidr, compareNetworkPayload)
	container.RegisterExtComparator(container.ExtMac, compareBytesPayload)
	container.RegisterExtComparator(container.ExtMac8, compareBytesPayload)
}

func compareNetworkPayload(a, b []byte) (int, error) {
	pa, okA := decodePrefix(a)
	pb, okB := decodePrefix(b)

	if !okA || !okB {
		return 0, errs.ErrMalformedNetwork
	}

	if c := pa.Addr().Compare(pb.Addr()); c != 0 {
		return c, nil
	}

	return pa.Bits() - pb.Bits(), nil
}

func compareBytesPayload(a, b []byte) (int, error) {
	return strings.Compare(formatHex(a), formatHex(b)), nil
}

func formatHex(b []byte) string {
	var sb strings.Builder
	for _, by := range b {
		if by < 0x10 {
			sb.WriteByte('0')
		}

		sb.WriteString(strconv.FormatInt(int64(by), 16))
	}

	return sb.String()
}
