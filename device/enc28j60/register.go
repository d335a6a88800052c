// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

// Bank identifies one of the four 32-byte register windows the chip
// multiplexes over its flat 8-bit address space, or Common for the five
// registers reachable regardless of the currently selected window.
type Bank uint8

// The four selectable banks.
const (
	Bank0 Bank = iota
	Bank1
	Bank2
	Bank3
	// Common registers are reachable without a bank switch.
	Common
)

func (b Bank) String() string {
	switch b {
	case Bank0:
		return "Bank0"
	case Bank1:
		return "Bank1"
	case Bank2:
		return "Bank2"
	case Bank3:
		return "Bank3"
	case Common:
		return "Common"
	default:
		return "Bank(?)"
	}
}

// reg8 is an 8-bit control register: a bank affiliation, a 5-bit address,
// and whether it is an ETH register (single-byte read framing) as opposed
// to a MAC/MII/PHY-shadow register (dummy-byte-then-data read framing).
type reg8 struct {
	bank Bank
	addr byte
	eth  bool
}

// reg16 is two adjacent 8-bit registers read/written as one 16-bit value,
// low byte first.
type reg16 struct {
	low, high reg8
}

// phyReg is a PHY register, reachable only through the MII indirection
// registers (micmd/miregadr/miwr/mird).
type phyReg struct {
	addr byte
}

//
// Common bank.
//

var (
	eie  = reg8{bank: Common, addr: 0x1b, eth: true}
	eir  = reg8{bank: Common, addr: 0x1c, eth: true}
	estat = reg8{bank: Common, addr: 0x1d, eth: true}
	econ2 = reg8{bank: Common, addr: 0x1e, eth: true}
	econ1 = reg8{bank: Common, addr: 0x1f, eth: true}
)

const (
	eieINTIE  = 0x80
	eiePKTIE  = 0x40
	eieDMAIE  = 0x20
	eieLINKIE = 0x10
	eieTXIE   = 0x08
	eieTXERIE = 0x02
	eieRXERIE = 0x01
)

const (
	eirPKTIF  = 0x40
	eirDMAIF  = 0x20
	eirLINKIF = 0x10
	eirTXIF   = 0x08
	eirTXERIF = 0x02
	eirRXERIF = 0x01
)

const (
	econ2AutoInc = 0x80
	econ2PktDec  = 0x40
)

const (
	econ1TxRst = 0x80
	econ1RxRst = 0x40
	econ1DmaSt = 0x20
	econ1CsumEn = 0x10
	econ1TxRts = 0x08
	econ1RxEn  = 0x04
	econ1BSel1 = 0x02
	econ1BSel0 = 0x01
)

//
// Bank 0: buffer pointers.
//

var (
	erdptl = reg8{bank: Bank0, addr: 0x00, eth: true}
	erdpth = reg8{bank: Bank0, addr: 0x01, eth: true}
	erdpt  = reg16{low: erdptl, high: erdpth}

	ewrptl = reg8{bank: Bank0, addr: 0x02, eth: true}
	ewrpth = reg8{bank: Bank0, addr: 0x03, eth: true}
	ewrpt  = reg16{low: ewrptl, high: ewrpth}

	etxstl = reg8{bank: Bank0, addr: 0x04, eth: true}
	etxsth = reg8{bank: Bank0, addr: 0x05, eth: true}
	etxst  = reg16{low: etxstl, high: etxsth}

	etxndl = reg8{bank: Bank0, addr: 0x06, eth: true}
	etxndh = reg8{bank: Bank0, addr: 0x07, eth: true}
	etxnd  = reg16{low: etxndl, high: etxndh}

	erxstl = reg8{bank: Bank0, addr: 0x08, eth: true}
	erxsth = reg8{bank: Bank0, addr: 0x09, eth: true}
	erxst  = reg16{low: erxstl, high: erxsth}

	erxndl = reg8{bank: Bank0, addr: 0x0a, eth: true}
	erxndh = reg8{bank: Bank0, addr: 0x0b, eth: true}
	erxnd  = reg16{low: erxndl, high: erxndh}

	erxrdptl = reg8{bank: Bank0, addr: 0x0c, eth: true}
	erxrdpth = reg8{bank: Bank0, addr: 0x0d, eth: true}
	erxrdpt  = reg16{low: erxrdptl, high: erxrdpth}
)

//
// Bank 1: filters and packet count.
//

var (
	erxfcon = reg8{bank: Bank1, addr: 0x18, eth: true}
	epktcnt = reg8{bank: Bank1, addr: 0x19, eth: true}
)

const (
	erxfconUCEN  = 0x80
	erxfconANDOR = 0x40
	erxfconCRCEN = 0x20
	erxfconPMEN  = 0x10
	erxfconMPEN  = 0x08
	erxfconHTEN  = 0x04
	erxfconMCEN  = 0x02
	erxfconBCEN  = 0x01
)

//
// Bank 2: MAC configuration and MII indirection.
//

var (
	macon1 = reg8{bank: Bank2, addr: 0x00}
	macon3 = reg8{bank: Bank2, addr: 0x02}
	macon4 = reg8{bank: Bank2, addr: 0x03}

	mabbipg = reg8{bank: Bank2, addr: 0x04}

	maipgl = reg8{bank: Bank2, addr: 0x06}
	maipgh = reg8{bank: Bank2, addr: 0x07}
	maipg  = reg16{low: maipgl, high: maipgh}

	mamxfll = reg8{bank: Bank2, addr: 0x0a}
	mamxflh = reg8{bank: Bank2, addr: 0x0b}
	mamxfl  = reg16{low: mamxfll, high: mamxflh}

	micmd    = reg8{bank: Bank2, addr: 0x12}
	miregadr = reg8{bank: Bank2, addr: 0x14}

	miwrl = reg8{bank: Bank2, addr: 0x16}
	miwrh = reg8{bank: Bank2, addr: 0x17}
	miwr  = reg16{low: miwrl, high: miwrh}

	mirdl = reg8{bank: Bank2, addr: 0x18}
	mirdh = reg8{bank: Bank2, addr: 0x19}
	mird  = reg16{low: mirdl, high: mirdh}
)

const (
	macon1LoopBk  = 0x10
	macon1TxPaus  = 0x08
	macon1RxPaus  = 0x04
	macon1PassAll = 0x02
	macon1MarxEn  = 0x01
)

const (
	macon3PadCfg2 = 0x80
	macon3PadCfg1 = 0x40
	macon3PadCfg0 = 0x20
	macon3TxCrcEn = 0x10
	macon3PhdrLen = 0x08
	macon3HFrmLen = 0x04
	macon3FrmLnEn = 0x02
	macon3FulDpx  = 0x01
)

const macon4Defer = 1 << 6

const (
	micmdMIIScan = 0x02
	micmdMIIRd   = 0x01
)

//
// Bank 3: MAC address, MII status, revision.
//

var (
	maadr5 = reg8{bank: Bank3, addr: 0x00}
	maadr6 = reg8{bank: Bank3, addr: 0x01}
	maadr3 = reg8{bank: Bank3, addr: 0x02}
	maadr4 = reg8{bank: Bank3, addr: 0x03}
	maadr1 = reg8{bank: Bank3, addr: 0x04}
	maadr2 = reg8{bank: Bank3, addr: 0x05}

	mistat = reg8{bank: Bank3, addr: 0x0a}

	erevid = reg8{bank: Bank3, addr: 0x12, eth: true}
)

const (
	mistatNValid = 0x04
	mistatScan   = 0x02
	mistatBusy   = 0x01
)

// maadrByIndex returns the MAADRn register holding mac[i], i in [0,6).
// MAADR1 holds the first (OUI) octet per the datasheet's MSB-first
// convention.
func maadrByIndex(i int) reg8 {
	switch i {
	case 0:
		return maadr1
	case 1:
		return maadr2
	case 2:
		return maadr3
	case 3:
		return maadr4
	case 4:
		return maadr5
	default:
		return maadr6
	}
}

//
// PHY registers, reached only through the MII indirection registers above.
//

var (
	phcon1 = phyReg{addr: 0x00}
	phstat1 = phyReg{addr: 0x01}
	phid1  = phyReg{addr: 0x02}
	phid2  = phyReg{addr: 0x03}
	phcon2 = phyReg{addr: 0x10}
	phstat2 = phyReg{addr: 0x11}
	phie   = phyReg{addr: 0x12}
	phir   = phyReg{addr: 0x13}
	phlcon = phyReg{addr: 0x14}
)

const (
	phcon1PRst   = 0x8000
	phcon1PLoopBk = 0x4000
	phcon1PPwrSv = 0x0800
	phcon1PDpxMd = 0x0100
)

const (
	phstat1PFdpx  = 0x1000
	phstat1PHdpx  = 0x0800
	phstat1LLStat = 0x0004
	phstat1JBStat = 0x0002
)

const (
	phcon2FrcLink = 0x4000
	phcon2TxDis   = 0x2000
	phcon2Jabber  = 0x0400
	phcon2HdlDis  = 0x0100
)

// PHSTAT2 bit positions of interest to checkLinkStatus.
const (
	phstat2TxStat  = 1 << 13
	phstat2RxStat  = 1 << 12
	phstat2ColStat = 1 << 11
	phstat2LStat   = 1 << 10
	phstat2DpxStat = 1 << 9
	phstat2Plrity  = 1 << 5
)

const (
	phiePLnkIE = 1 << 4
	phiePGeIE  = 1 << 1
)

const (
	phirPLnkIF = 1 << 4
	phirPGeIF  = 1 << 1
)
