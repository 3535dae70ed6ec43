// genoh5: tools for converting genomic data to HDF5 files.
// Copyright (c) 2020 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/exascience/genoh5/blob/master/LICENSE.txt>.

// Package h5 wraps the HDF5 library for the dataset shapes that
// genoh5 writes: 1-D vectors, row-major 2-D matrices, and 1-D
// compound tables.
package h5

import (
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/exascience/genoh5/internal"

	"github.com/google/uuid"
	"gonum.org/v1/hdf5"
)

// File is an HDF5 file for output. The data is written to a hidden
// temporary file in the same directory, which is renamed into place
// on Close. An interrupted run therefore never leaves a truncated
// file under the requested name.
type File struct {
	file    *hdf5.File
	path    string
	tmpPath string
}

// Create an HDF5 file for output.
func Create(filename string) *File {
	path := internal.FullPathname(filename)
	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.New().String())
	file, err := hdf5.CreateFile(tmpPath, hdf5.F_ACC_TRUNC)
	if err != nil {
		log.Panic(err)
	}
	return &File{file: file, path: path, tmpPath: tmpPath}
}

// Close the HDF5 file and move it to its final name.
func (f *File) Close() {
	if err := f.file.Close(); err != nil {
		log.Panic(err)
	}
	if err := os.Rename(f.tmpPath, f.path); err != nil {
		log.Panic(err)
	}
}

// Discard closes the HDF5 file and removes it without moving it to
// its final name.
func (f *File) Discard() {
	if err := f.file.Close(); err != nil {
		log.Panic(err)
	}
	if err := os.Remove(f.tmpPath); err != nil {
		log.Panic(err)
	}
}

func (f *File) writeDataset(name string, dtype *hdf5.Datatype, dims []uint, data interface{}) {
	dspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		log.Panic(err)
	}
	defer internal.Close(dspace)
	dset, err := f.file.CreateDataset(name, dtype, dspace)
	if err != nil {
		log.Panic(err)
	}
	defer internal.Close(dset)
	for _, dim := range dims {
		if dim == 0 {
			// nothing to write into an empty dataset
			return
		}
	}
	if err := dset.Write(data); err != nil {
		log.Panic(err)
	}
}

// WriteUint8Vector writes a 1-D uint8 dataset.
func (f *File) WriteUint8Vector(name string, data []byte) {
	f.writeDataset(name, hdf5.T_NATIVE_UINT8, []uint{uint(len(data))}, &data)
}

// WriteInt64Vector writes a 1-D int64 dataset.
func (f *File) WriteInt64Vector(name string, data []int64) {
	f.writeDataset(name, hdf5.T_NATIVE_INT64, []uint{uint(len(data))}, &data)
}

// WriteInt8Matrix writes a 2-D int8 dataset from row-major data.
// len(data) must be rows*cols.
func (f *File) WriteInt8Matrix(name string, rows, cols int, data []int8) {
	if len(data) != rows*cols {
		log.Panicf("inconsistent size %v for %vx%v matrix %v", len(data), rows, cols, name)
	}
	f.writeDataset(name, hdf5.T_NATIVE_INT8, []uint{uint(rows), uint(cols)}, &data)
}

// WriteFloat32Matrix writes a 2-D float32 dataset from row-major
// data. len(data) must be rows*cols.
func (f *File) WriteFloat32Matrix(name string, rows, cols int, data []float32) {
	if len(data) != rows*cols {
		log.Panicf("inconsistent size %v for %vx%v matrix %v", len(data), rows, cols, name)
	}
	f.writeDataset(name, hdf5.T_NATIVE_FLOAT, []uint{uint(rows), uint(cols)}, &data)
}

// WriteTable writes a slice of structs as a 1-D compound dataset.
// The struct fields must have fixed-size types.
func (f *File) WriteTable(name string, data interface{}) {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		log.Panicf("table data for %v is not a slice", name)
	}
	dtype, err := hdf5.NewDatatypeFromValue(reflect.New(v.Type().Elem()).Elem().Interface())
	if err != nil {
		log.Panic(err)
	}
	defer internal.Close(dtype)
	// the hdf5 bindings need an addressable value
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	f.writeDataset(name, dtype, []uint{uint(v.Len())}, ptr.Interface())
}
